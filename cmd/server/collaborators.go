package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/ai"
	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/ephemeral"
	"github.com/MKhiriev/traveltrek/internal/identity"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/notify"
	"github.com/MKhiriev/traveltrek/internal/objstore"
	"github.com/MKhiriev/traveltrek/internal/service"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/internal/workers"
	"github.com/MKhiriev/traveltrek/models"
)

// newCollaborators builds the non-database dependencies of the service
// layer. Redis backs the OTP store, chat limiter and notification queue
// when configured; otherwise in-memory versions are used and swept
// periodically.
func newCollaborators(ctx context.Context, cfg *config.StructuredConfig, storages *store.Storages, log *logger.Logger) (service.Collaborators, *workers.Workers, error) {
	var (
		deps       service.Collaborators
		queue      notify.Queue
		background = workers.NewWorkers()
	)

	if storages.Redis != nil {
		limiter, err := ephemeral.NewRedisRateLimiter(storages.Redis, "chat", cfg.Limits.ChatRequests, cfg.Limits.ChatWindow)
		if err != nil {
			return deps, nil, fmt.Errorf("chat limiter: %w", err)
		}
		deps.ChatLimiter = limiter
		deps.OTPStore = ephemeral.NewRedisOTPStore(storages.Redis, cfg.Limits.OTPTTL)
		queue = notify.NewRedisQueue(storages.Redis)
		log.Info().Msg("using redis for OTPs, chat limits and notifications")
	} else {
		limiter, err := ephemeral.NewMemoryRateLimiter(cfg.Limits.ChatRequests, cfg.Limits.ChatWindow)
		if err != nil {
			return deps, nil, fmt.Errorf("chat limiter: %w", err)
		}
		otps := ephemeral.NewMemoryOTPStore(cfg.Limits.OTPTTL)
		deps.ChatLimiter = limiter
		deps.OTPStore = otps
		queue = notify.NewMemoryQueue(cfg.Notify.QueueSize)
		background.Add(ephemeral.NewSweepJob(cfg.Limits.SweepInterval, log, limiter, otps))
		log.Info().Msg("using in-memory OTPs, chat limits and notifications")
	}

	senders := map[models.Channel]notify.Sender{
		models.ChannelEmail:    notify.NewEmailSender(cfg.Notify, log),
		models.ChannelWhatsApp: notify.NewWhatsAppSender(cfg.Notify, log),
		models.ChannelPush:     notify.NewPushSender(cfg.Notify, log),
	}
	background.Add(notify.NewWorker(queue, senders, cfg.Notify.MaxAttempts, cfg.Notify.RetryDelay, log))

	devOTP := cfg.Notify.SMTPHost == ""
	deps.Notifier = notify.NewDispatcher(queue, notify.BrandFromConfig(cfg.App), cfg.Limits.OTPTTL, devOTP, log)

	google, err := identity.NewGoogleVerifier(cfg.App.GoogleClientID, "", cfg.Server.RequestTimeout)
	switch {
	case err == nil:
		deps.Google = google
	case errors.Is(err, identity.ErrNotConfigured):
		log.Warn().Msg("no google client id configured, google sign-in is disabled")
	default:
		return deps, nil, fmt.Errorf("google verifier: %w", err)
	}

	brand := ai.Brand{
		CompanyName:  cfg.App.CompanyName,
		SupportEmail: cfg.App.SupportEmail,
		SupportPhone: cfg.App.SupportPhone,
	}
	var primary ai.Generator
	gemini, err := ai.NewGemini(cfg.AI)
	switch {
	case err == nil:
		primary = gemini
	case errors.Is(err, ai.ErrNotConfigured):
		log.Warn().Msg("no language model configured, chat uses rule-based replies")
	default:
		return deps, nil, fmt.Errorf("language model: %w", err)
	}
	deps.Responder = ai.NewConcierge(primary, brand, log)

	objects, err := objstore.New(ctx, cfg.Storage.Objects, log)
	if err != nil {
		return deps, nil, fmt.Errorf("object storage: %w", err)
	}
	deps.Objects = objects

	return deps, background, nil
}
