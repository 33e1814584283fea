package http

import (
	"time"

	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/service"
	"github.com/MKhiriev/traveltrek/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator

	// publicLimiter throttles unauthenticated auth and enrollment routes per client IP.
	publicLimiter *ipRateLimiter

	// uploadsDir is served under /uploads/ when objects are stored locally.
	uploadsDir string

	// requestTimeout bounds every route except the chat stream.
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	var uploadsDir string
	if cfg.Storage.Objects.Endpoint == "" {
		uploadsDir = cfg.Storage.Objects.LocalDir
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		validator:      validators.NewRequestValidator(),
		publicLimiter:  newIPRateLimiter(cfg.Limits.PublicRPS, cfg.Limits.PublicBurst, visitorTTL),
		uploadsDir:     uploadsDir,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
