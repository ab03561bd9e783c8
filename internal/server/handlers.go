// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/citegraph/internal/engine"
	"github.com/pdiddy/citegraph/pkg/types"
)

// buildRequest is the POST /api/graph/build payload.
type buildRequest struct {
	Topic  string              `json:"topic" binding:"required"`
	Papers []types.PaperRecord `json:"papers" binding:"required"`
}

func (s *Server) handleBuild(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	artifact, err := s.engine.BuildGraph(ctx, req.Papers, req.Topic)
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		s.log.Error("graph build failed",
			zap.String("topic", req.Topic),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "graph build failed"})
		return
	}

	c.JSON(http.StatusOK, artifact)
}

func (s *Server) handleCached(c *gin.Context) {
	fingerprint := c.Param("fingerprint")
	artifact, ok := s.engine.CachedArtifact(fingerprint)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached graph for fingerprint"})
		return
	}
	c.JSON(http.StatusOK, artifact)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestLogger tags each request with an ID and logs its outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		s.log.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}
