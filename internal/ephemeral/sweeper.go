package ephemeral

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/workers"
)

// NewSweepJob returns a periodic worker that sweeps every store each
// interval. Its lifetime is bound to the context passed to Run.
func NewSweepJob(interval time.Duration, log *logger.Logger, stores ...Sweeper) *workers.PeriodicJob {
	return workers.NewPeriodicJob("ephemeral-sweep", interval, func(ctx context.Context) error {
		return SweepAll(ctx, log, stores...)
	}, log)
}

// SweepAll sweeps every store once and joins their errors.
func SweepAll(ctx context.Context, log *logger.Logger, stores ...Sweeper) error {
	var errs []error
	removed := 0
	for _, s := range stores {
		n, err := s.Sweep(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		removed += n
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("swept expired ephemeral entries")
	}
	return errors.Join(errs...)
}
