// Package pushapi exposes the worker's HTTP delivery surface. Cloud push
// subscriptions POST wrapped envelopes here; the endpoint acknowledges with
// 204 and signals redelivery with 500, mirroring the Kafka commit semantics.
package pushapi

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cashflow-dev/cashflow-backend/internal/api/middleware"
	"github.com/cashflow-dev/cashflow-backend/internal/config"
	"github.com/gin-gonic/gin"
)

// DeliveryProcessor decides the fate of one raw delivery. A nil return
// acknowledges it; an error asks the transport to redeliver.
type DeliveryProcessor interface {
	Process(ctx context.Context, key string, raw []byte) error
}

// pushRequest is the push subscription wrapper: the envelope travels
// base64-encoded in message.data
type pushRequest struct {
	Message struct {
		Data      string `json:"data" binding:"required"`
		MessageID string `json:"messageId"`
	} `json:"message" binding:"required"`
	Subscription string `json:"subscription"`
}

// Server is the worker's HTTP server
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer wires the push endpoint and health check
func NewServer(log *slog.Logger, cfg *config.Config, processor DeliveryProcessor) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	router.POST("/pubsub/push", pushHandler(log, processor))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		logger: log,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// pushHandler unwraps the push payload and runs the delivery through the
// processor. Unparseable wrappers are acknowledged with 204: retrying them
// can never succeed and a push subscription would otherwise retry forever.
func pushHandler(log *slog.Logger, processor DeliveryProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req pushRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Error("Invalid push request body, acknowledging to stop retries", "error", err)
			c.Status(http.StatusNoContent)
			return
		}

		raw, err := base64.StdEncoding.DecodeString(req.Message.Data)
		if err != nil {
			log.Error("Invalid base64 in push message data, acknowledging to stop retries",
				"message_id", req.Message.MessageID,
				"error", err,
			)
			c.Status(http.StatusNoContent)
			return
		}

		if err := processor.Process(c.Request.Context(), req.Message.MessageID, raw); err != nil {
			// Transient failure: a 500 makes the subscription redeliver
			log.Error("Failed to process push delivery",
				"message_id", req.Message.MessageID,
				"error", err,
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start worker HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping worker HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.httpServer.WriteTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop worker HTTP server: %w", err)
	}

	return nil
}
