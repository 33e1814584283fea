// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
)

// PeriodicJob runs fn every interval until the context is cancelled.
// The first run happens one interval after Run is called.
type PeriodicJob struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
	logger   *logger.Logger
}

func NewPeriodicJob(name string, interval time.Duration, fn func(ctx context.Context) error, log *logger.Logger) *PeriodicJob {
	return &PeriodicJob{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   log,
	}
}

func (j *PeriodicJob) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info().Str("job", j.name).Dur("interval", j.interval).Msg("periodic job started")

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Str("job", j.name).Msg("periodic job stopped")
			return
		case <-ticker.C:
			if err := j.fn(ctx); err != nil {
				j.logger.Err(err).Str("job", j.name).Msg("periodic job run failed")
			}
		}
	}
}
