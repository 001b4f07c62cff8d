package http

import (
	"time"

	"github.com/MKhiriev/go-smart-deals/internal/config"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/service"
)

type Handler struct {
	services *service.Services

	// strictAuth puts the auth middleware in front of every mutating route.
	strictAuth     bool
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Bool("strict_auth", cfg.App.StrictAuth).Msg("http handler created")
	return &Handler{
		services:       services,
		strictAuth:     cfg.App.StrictAuth,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
