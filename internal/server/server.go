package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/atikulmunna/logscan/internal/hub"
	"github.com/gin-gonic/gin"
)

// Server exposes the latest log analysis over HTTP and WebSocket.
type Server struct {
	engine  *gin.Engine
	hub     *hub.Hub
	addr    string
	started time.Time
}

// New creates a server that reads analyses from h.
func New(h *hub.Hub, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine:  engine,
		hub:     h,
		addr:    addr,
		started: time.Now(),
	}

	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		latest, ok := s.hub.Latest()
		body := gin.H{
			"status":    "ok",
			"uptime":    time.Since(s.started).Truncate(time.Second).String(),
			"log_found": ok && latest.Found(),
			"dropped":   s.hub.Dropped(),
		}
		if ok {
			body["analyzed_at"] = latest.AnalyzedAt
		}
		c.JSON(http.StatusOK, body)
	})

	s.engine.GET("/api/report", func(c *gin.Context) {
		latest, ok := s.hub.Latest()
		if !ok || !latest.Found() {
			c.JSON(http.StatusNotFound, gin.H{"error": "no log file found"})
			return
		}
		c.JSON(http.StatusOK, latest)
	})

	s.engine.GET("/ws", s.handleWebSocket)
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
