// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package devserver is a local REST backend for the project API. It stores
// projects, typed records and attachments in SQLite and serves the routes
// the REST client calls, so the saga can run end to end without the real
// services.
package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/pkg/types"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxUploadBytes caps request bodies when none is configured.
	DefaultMaxUploadBytes int64 = 32 << 20

	shutdownTimeout = 10 * time.Second
)

// Server serves the project API from a Store.
type Server struct {
	engine *gin.Engine
	store  *Store
	cfg    types.ServerConfig
	logger *zap.Logger
}

// New builds the gin engine for store. A nil logger discards logs; a nil
// registry gets a private one, exposed at /metrics either way.
func New(store *Store, cfg types.ServerConfig, logger *zap.Logger, reg *prometheus.Registry) *Server {
	gin.SetMode(gin.ReleaseMode)
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "research_projects",
		Subsystem: "devserver",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, route and status.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(requests)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(logger, requests))
	engine.Use(MaxBodySize(cfg.MaxUploadBytes))
	engine.Use(CORS())

	s := &Server{engine: engine, store: store, cfg: cfg, logger: logger}
	s.registerRoutes(reg)
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("devserver listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listening")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down")
	}
	s.logger.Info("devserver stopped")
	return nil
}

func (s *Server) registerRoutes(reg *prometheus.Registry) {
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)

	authed := api.Group("", BearerAuth(s.cfg.AuthToken))
	{
		authed.POST("/projects", s.handleCreateProject)
		authed.GET("/projects/:id", s.handleGetProject)
		authed.GET("/projects/:id/typed", s.handleGetTyped)
		authed.PUT("/projects/:id", s.handleUpdateProject)
		authed.DELETE("/projects/:id", s.handleDeleteProject)

		registerTyped(authed, s.store, "publications", publications)
		registerTyped(authed, s.store, "patents", patents)
		registerTyped(authed, s.store, "research", research)

		authed.GET("/attachments/:entityType/:entityId", s.handleListAttachments)
		authed.POST("/attachments/:entityType/:entityId", s.handlePutAttachments(false))
		authed.PUT("/attachments/:entityType/:entityId", s.handlePutAttachments(true))
		authed.DELETE("/attachments/:entityType/:entityId/:fileName", s.handleDeleteAttachment)
	}

	s.engine.GET("/files/:entityType/:entityId/:fileName", s.handleServeFile)
}
