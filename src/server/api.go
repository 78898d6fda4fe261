package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"jyotish-chart/src/interfaces"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"
	"jyotish-chart/src/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

var _ interfaces.IDataExchanger = (*ChartServer)(nil)

// -----------------------------------------------------------------------------
// ChartServer
// -----------------------------------------------------------------------------

type ChartServer struct {
	Config     *models.MConfig
	Service    *service.ChartService
	Logger     *logger.Logger
	engine     *gin.Engine
	httpServer *http.Server

	// WebSocket clients
	clients     map[*Client]struct{}
	broadcast   chan *models.MChartEvent // Buffered Queue
	register    chan *Client
	unregister  chan *Client
	done        chan struct{}
	stopOnce    sync.Once
	connections atomic.Int32

	// Last computed chart, sent to clients on connect
	latestEvent *models.MChartEvent
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

// NewChartServer builds the HTTP/WebSocket server and subscribes it to the
// service so every computed chart is pushed to websocket clients.
func NewChartServer(cfg *models.MConfig, svc *service.ChartService, logger *logger.Logger) *ChartServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &ChartServer{
		Config:  cfg,
		Service: svc,
		Logger:  logger,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered channel to prevent lock/blocking
		broadcast:  make(chan *models.MChartEvent, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
	svc.OnComputed = s.publishComputed

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if cfg.CorsOriginPrefix != "" && strings.HasPrefix(origin, cfg.CorsOriginPrefix) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Request ID, echoed back so callers can correlate logs
	s.engine.Use(func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	})

	// Request metrics
	s.engine.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		svc.Metrics.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	})

	// setup web routes
	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: s.engine,
	}

	go s.handleWebsockets()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *ChartServer) setupRoutes() {
	// REST API endpoints
	api := s.engine.Group("/api")
	api.POST("/calculate-chart", s.calculateChart)
	api.GET("/charts", s.listCharts)
	api.GET("/charts/:id", s.getChart)
	api.GET("/config", s.getConfig)
	api.GET("/health", s.getHealth)

	// Prometheus scrape endpoint
	s.engine.GET("/metrics", gin.WrapH(s.Service.Metrics.Handler()))

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the router, mainly for tests.
func (s *ChartServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *ChartServer) Start() error {
	s.Logger.Info("Starting server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *ChartServer) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		// Clean shutdown
		close(s.done)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	})
	return err
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *ChartServer) calculateChart(c *gin.Context) {
	var birth models.MBirthData
	if err := c.ShouldBindJSON(&birth); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid JSON body: %v", err)})
		return
	}

	chart, err := s.Service.Calculate(c.Request.Context(), birth)
	if err != nil {
		s.Logger.Debug("calculate-chart failed (request %s): %v", c.GetString("request_id"), err)
		status, body := errorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, chartResponse{Success: true, MChart: chart})
}

// -----------------------------------------------------------------------------

func (s *ChartServer) listCharts(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	charts, err := s.Service.ListCharts(limit)
	if err != nil {
		status, body := errorResponse(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"charts": charts, "count": len(charts)})
}

// -----------------------------------------------------------------------------

func (s *ChartServer) getChart(c *gin.Context) {
	id := c.Param("id")
	record, err := s.Service.GetChart(id)
	if err != nil {
		status, body := errorResponse(err)
		c.JSON(status, body)
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("chart %s not found", id)})
		return
	}
	c.JSON(http.StatusOK, record)
}

// -----------------------------------------------------------------------------

func (s *ChartServer) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sidereal_mode": s.Service.Facade.SiderealMode,
		"ephemeris":     s.Service.Facade.Ephemeris.Name(),
		"chart":         s.Service.Facade.Config,
		"divisors":      models.AllDivisors,
	})
}

// -----------------------------------------------------------------------------

func (s *ChartServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	var latest string
	if s.latestEvent != nil && s.latestEvent.Summary != nil {
		latest = s.latestEvent.Summary.ID
	}
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"service":      s.Service.Status(),
		"connections":  s.connections.Load(),
		"latest_chart": latest,
	})
}
