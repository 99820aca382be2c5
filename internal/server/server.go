// Package server exposes the verification engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/verity/internal/engine"
	"github.com/ppiankov/verity/internal/model"
)

// Server wraps the engine in a gin HTTP API
type Server struct {
	engine *engine.Engine
	cfg    model.ServerConfig
	router *gin.Engine
	logger *slog.Logger
}

// New creates a Server over the given engine
func New(eng *engine.Engine, cfg model.ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		engine: eng,
		cfg:    cfg,
		router: router,
		logger: slog.Default().With("component", "server"),
	}

	api := router.Group("/api/v1")
	api.POST("/verify", s.handleVerify)
	api.GET("/status", s.handleStatus)
	api.GET("/cache/stats", s.handleCacheStats)
	api.DELETE("/cache", s.handleCacheClear)

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleVerify(c *gin.Context) {
	var req model.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.engine.Verify(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("verification failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleStatus(c *gin.Context) {
	stats := s.engine.CorpusStats()
	corpus := make(map[string]int, len(stats))
	total := 0
	for verdict, n := range stats {
		corpus[string(verdict)] = n
		total += n
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"corpus_size": total,
		"corpus":      corpus,
		"sources":     s.engine.SourceNames(),
		"cache":       s.engine.CacheStats(),
	})
}

func (s *Server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.CacheStats())
}

func (s *Server) handleCacheClear(c *gin.Context) {
	if err := s.engine.ClearCache(); err != nil {
		s.logger.Error("cache clear failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cache"})
		return
	}
	c.Status(http.StatusNoContent)
}
