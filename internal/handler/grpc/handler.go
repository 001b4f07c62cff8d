// Package grpc exposes the standard gRPC health service of the marketplace.
package grpc

import (
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// MarketplaceService is the health service name reported next to the
// overall ("") status.
const MarketplaceService = "smartdeals.Marketplace"

// Handler is the root gRPC transport handler.
//
// It owns the health server whose status is switched by the storage health
// worker. A handler is created once storage is connected, so it starts out
// SERVING.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

func NewHandler(logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.SetServing(true)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health and reflection services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
	reflection.Register(server)
}

// SetServing reports SERVING or NOT_SERVING for every service.
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(MarketplaceService, status)
}

// Shutdown marks every service NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
