// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
)

// Dispatcher turns domain events into notifications and enqueues them.
// It never waits for delivery.
type Dispatcher struct {
	queue  Queue
	brand  Brand
	otpTTL time.Duration

	// devOTP logs codes at debug level when email is not configured.
	devOTP bool
	logger *logger.Logger
}

func NewDispatcher(queue Queue, brand Brand, otpTTL time.Duration, devOTP bool, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		queue:  queue,
		brand:  brand,
		otpTTL: otpTTL,
		devOTP: devOTP,
		logger: log,
	}
}

func (d *Dispatcher) Enqueue(ctx context.Context, n models.Notification) error {
	if n.Recipient == "" {
		return ErrEmptyRecipient
	}
	n.Attempts = 0
	return d.queue.Push(ctx, n)
}

func (d *Dispatcher) enqueueAll(ctx context.Context, notifications []models.Notification) error {
	var errs []error
	for _, n := range notifications {
		if err := d.Enqueue(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s/%s: %w", n.Kind, n.Channel, err))
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) NotifyActivation(ctx context.Context, user models.User, membershipID string, plan models.PlanType) error {
	return d.enqueueAll(ctx, ActivationMessages(d.brand, user, membershipID, plan))
}

func (d *Dispatcher) NotifyWelcome(ctx context.Context, user models.User) error {
	return d.enqueueAll(ctx, WelcomeMessages(d.brand, user))
}

func (d *Dispatcher) NotifyOTP(ctx context.Context, user models.User, purpose, code string) error {
	if d.devOTP {
		logger.FromContext(ctx).Debug().
			Str("func", "Dispatcher.NotifyOTP").
			Int64("user_id", user.ID).
			Str("purpose", purpose).
			Str("code", code).
			Msg("email not configured, one-time code logged")
	}
	return d.Enqueue(ctx, OTPMessage(d.brand, user, purpose, code, d.otpTTL.String()))
}

func (d *Dispatcher) NotifyRejection(ctx context.Context, user models.User, plan models.PlanType, reason string) error {
	return d.Enqueue(ctx, RejectionMessage(d.brand, user, plan, reason))
}
