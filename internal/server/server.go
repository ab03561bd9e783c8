// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the graph build engine over HTTP. The request
// boundary here owns the overall timeout; the engine underneath never
// blocks on I/O.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/citegraph/internal/engine"
	"github.com/pdiddy/citegraph/pkg/types"
)

// Server serves the graph build API.
type Server struct {
	engine *engine.Engine
	log    *zap.Logger
	cfg    types.ServerConfig
}

// New returns a Server around the given engine.
func New(eng *engine.Engine, log *zap.Logger, cfg types.ServerConfig) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return &Server{engine: eng, log: log, cfg: cfg}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.engine.Close()
	return nil
}

// Router wires the HTTP routes.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Mode == "release" || s.cfg.Mode == "prod" || s.cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/graph/build", s.handleBuild)
		api.GET("/graph/:fingerprint", s.handleCached)
	}
	return r
}
