// Package notify hands outbound notifications to a queue and delivers them
// from a background worker, so that a slow or failing channel never delays
// or rolls back the request that triggered it.
package notify

import (
	"context"

	"github.com/MKhiriev/traveltrek/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notify_mock.go -package=mock

// Queue buffers notifications between the dispatcher and the worker.
type Queue interface {
	Push(ctx context.Context, n models.Notification) error

	// Pop blocks until a notification is available or ctx is done.
	// ok is false when nothing was popped.
	Pop(ctx context.Context) (n models.Notification, ok bool, err error)

	// DeadLetter parks a notification that ran out of attempts.
	DeadLetter(ctx context.Context, n models.Notification, cause error) error

	Len(ctx context.Context) (int64, error)
}

// Sender delivers a notification over one channel.
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}
