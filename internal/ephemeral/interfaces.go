package ephemeral

import (
	"context"

	"github.com/MKhiriev/traveltrek/models"
)

// OTPStore keeps one outstanding code per (owner, purpose) pair.
type OTPStore interface {
	// Store inserts or overwrites the entry for (owner, purpose). Any
	// previously outstanding code for the pair stops being valid.
	Store(ctx context.Context, owner, purpose, pendingValue, code string) error

	// Verify consumes the entry when code matches and it has not expired.
	// A mismatching code leaves the entry in place.
	Verify(ctx context.Context, owner, purpose, code string) (models.OTPResult, error)

	// Sweep drops expired entries and reports how many were removed.
	Sweep(ctx context.Context) (int, error)
}

// RateLimiter is a fixed-window request counter keyed by owner.
type RateLimiter interface {
	Check(ctx context.Context, owner string) (models.RateLimitResult, error)
	Sweep(ctx context.Context) (int, error)
}

// Sweeper is implemented by every store.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}
