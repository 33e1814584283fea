// Package grpc exposes the standard grpc.health.v1 service so that
// orchestrators can probe the backend without going through HTTP.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/service"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const pingTimeout = 2 * time.Second

// Handler is the root gRPC transport handler. It answers health checks from
// the database ping of the service layer.
type Handler struct {
	healthpb.UnimplementedHealthServer

	services *service.Services
	logger   *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Check reports SERVING while the database answers a ping. Only the empty
// service name and "traveltrek" are known.
func (h *Handler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	switch req.GetService() {
	case "", "traveltrek":
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.services.HealthChecker.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("gRPC health check failed")
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
