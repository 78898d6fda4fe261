package server

import (
	"time"

	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // commands only carry birth data
	sendBuffer     = 256
)

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

// Client is one websocket peer. The hub owns send and closes it on
// unregister; reply is the only writer outside the hub loop.
type Client struct {
	id     string
	hub    *ChartServer
	conn   *websocket.Conn
	send   chan *models.MChartEvent
	logger *logger.Logger
}

func newClient(hub *ChartServer, conn *websocket.Conn) *Client {
	id := uuid.NewString()[:8]
	return &Client{
		id:     id,
		hub:    hub,
		conn:   conn,
		send:   make(chan *models.MChartEvent, sendBuffer),
		logger: hub.Logger.With("client", id),
	}
}

// -----------------------------------------------------------------------------

// readPump dispatches commands until the peer goes away or stops answering
// pings.
func (c *Client) readPump() {
	defer c.leave()

	c.conn.SetReadLimit(maxMessageSize)
	c.extendDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendDeadline()
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Info("WebSocket error: %v", err)
			}
			return
		}
		c.hub.HandleClientMessage(c, message)
	}
}

func (c *Client) extendDeadline() {
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
}

func (c *Client) leave() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
	c.conn.Close()
	c.logger.Debug("Client disconnected")
}

// -----------------------------------------------------------------------------

// reply queues a direct response without blocking on a full buffer.
func (c *Client) reply(event *models.MChartEvent) {
	defer func() {
		// send may already be closed by the hub
		_ = recover()
	}()
	select {
	case c.send <- event:
	default:
		c.logger.Warning("Client buffer full, dropping %s reply", event.Type)
	}
}

// -----------------------------------------------------------------------------

// writePump drains send and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			if !ok {
				c.write(websocket.CloseMessage, nil)
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				c.logger.Info("Write error: %v", err)
				return
			}

		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}
