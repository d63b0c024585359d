// Package server provides the HTTP server wiring for the pantry API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aislehq/pantry/internal/infrastructure/config"
	"github.com/aislehq/pantry/internal/infrastructure/http/handlers"
	"github.com/aislehq/pantry/pkg/healthcheck"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and its router.
type Server struct {
	httpServer *http.Server
	api        *handlers.InventoryAPI
	logger     *zap.Logger
	cfg        config.ServerConfig
}

// New creates a configured HTTP server
func New(
	cfg *config.Config,
	api *handlers.InventoryAPI,
	health *healthcheck.HealthCheck,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Server {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	router.GET("/healthz", health.Handler())
	router.GET("/livez", health.LivenessHandler())
	router.GET("/readyz", health.ReadinessHandler())

	if cfg.Server.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	api.Register(router.Group("/api/v1"))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		api:    api,
		logger: logger.Named("http-server"),
		cfg:    cfg.Server,
	}
}

// Start loads the inventory projection and begins serving.
func (s *Server) Start(ctx context.Context) error {
	if err := s.api.LoadState(ctx); err != nil {
		return fmt.Errorf("failed to load inventory projection: %w", err)
	}

	s.logger.Info("HTTP server starting", zap.String("addr", s.httpServer.Addr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server stopped unexpectedly", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs each request with zap.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		log.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(started)),
		)
	}
}
