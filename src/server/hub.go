package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"jyotish-chart/src/helpers"
	"jyotish-chart/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventChart         = "CHART"
	EventChartComputed = "CHART_COMPUTED"
	EventError         = "ERROR"
	EventPong          = "PONG"

	wsCalculateTimeout = 30 * time.Second
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *ChartServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
			}
			s.updateConnections()
			return

		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.updateConnections()
			// Send the last computed chart on connect
			s.stateMutex.RLock()
			if s.latestEvent != nil {
				client.send <- s.latestEvent
			}
			s.stateMutex.RUnlock()

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
				s.updateConnections()
			}

		case message := <-s.broadcast:
			if message.Type == EventChartComputed {
				s.stateMutex.Lock()
				s.latestEvent = message
				s.stateMutex.Unlock()
			}

			// Broadcast to all clients
			for client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
			s.updateConnections()
		}
	}
}

// -----------------------------------------------------------------------------

func (s *ChartServer) updateConnections() {
	n := len(s.clients)
	s.connections.Store(int32(n))
	s.Service.Metrics.WebsocketClients.Set(float64(n))
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Broadcast converts payload to an event and queues it for every client.
func (s *ChartServer) Broadcast(payload interface{}) {
	event, ok := toEvent(payload)
	if !ok {
		// Log error but don't crash
		s.Logger.Info("Broadcast got unsupported payload %T", payload)
		return
	}

	select {
	case s.broadcast <- event:
	case <-s.done:
	default:
		s.Logger.Warning("Broadcast queue full, dropping %s event", event.Type)
	}
}

// publishComputed is the service hook for finished charts.
func (s *ChartServer) publishComputed(summary models.MChartSummary) {
	s.Broadcast(summary)
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *ChartServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := newClient(s, conn)

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *ChartServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		client.reply(&models.MChartEvent{Type: EventError, Error: "invalid command: " + err.Error()})
		return
	}

	switch cmd.Command {
	case "ping":
		client.reply(&models.MChartEvent{Type: EventPong})

	case "calculate":
		if cmd.Birth == nil {
			client.reply(&models.MChartEvent{Type: EventError, Error: helpers.NewInputError("birth data is required").Error()})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), wsCalculateTimeout)
		defer cancel()

		chart, err := s.Service.Calculate(ctx, *cmd.Birth)
		if err != nil {
			client.reply(&models.MChartEvent{Type: EventError, Error: err.Error()})
			return
		}
		client.reply(&models.MChartEvent{Type: EventChart, Chart: chart})

	default:
		client.reply(&models.MChartEvent{Type: EventError, Error: "unknown command " + cmd.Command})
	}
}
