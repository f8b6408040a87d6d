// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing, and timeout concerns
// are all handled at this layer before requests are forwarded to the
// service layer.
package http

import (
	"context"
	"time"

	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/internal/service"
)

// Pinger reports storage connectivity; implemented by store.Storages.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler owns the HTTP route handlers and their dependencies.
type Handler struct {
	services *service.Services
	pinger   Pinger

	// requestTimeout bounds every inbound request; zero disables the
	// timeout middleware.
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler constructs the HTTP handler set for the given services.
func NewHandler(services *service.Services, pinger Pinger, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		pinger:         pinger,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}
