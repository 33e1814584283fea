package ai

import (
	"context"
	"errors"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
)

// Reply sources reported to metrics.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
	SourcePartial  = "partial"
)

// Concierge answers chat messages with the primary generator and falls
// back to rule-based replies.
type Concierge struct {
	primary  Generator
	fallback *Fallback
	brand    Brand
	logger   *logger.Logger
}

// NewConcierge builds a concierge. primary may be nil.
func NewConcierge(primary Generator, brand Brand, log *logger.Logger) *Concierge {
	return &Concierge{
		primary:  primary,
		fallback: NewFallback(brand),
		brand:    brand,
		logger:   log,
	}
}

// Reply streams an answer to message through onChunk and returns the full
// text along with its source.
//
// If the model fails before emitting anything the fallback reply is sent
// as a single chunk. If it fails mid-stream the partial text is kept.
// Errors returned by onChunk abort the reply and are returned unchanged.
func (c *Concierge) Reply(ctx context.Context, cc models.ChatContext, history []models.ChatMessage, message string, onChunk func(string) error) (string, string, error) {
	var (
		full     []byte
		sinkErr  error
		captured = func(chunk string) error {
			if err := onChunk(chunk); err != nil {
				sinkErr = err
				return err
			}
			full = append(full, chunk...)
			return nil
		}
	)

	if c.primary != nil {
		err := c.primary.Stream(ctx, Request{
			System:  SystemPrompt(c.brand),
			Context: BuildContext(cc),
			History: history,
			Message: message,
		}, captured)
		switch {
		case err == nil:
			return string(full), SourceModel, nil
		case sinkErr != nil && errors.Is(err, sinkErr):
			return string(full), SourcePartial, err
		case len(full) > 0:
			c.logger.Warn().Err(err).Str("func", "Concierge.Reply").Msg("model stream interrupted, keeping partial reply")
			return string(full), SourcePartial, nil
		case ctx.Err() != nil:
			return "", SourceModel, ctx.Err()
		default:
			c.logger.Warn().Err(err).Str("func", "Concierge.Reply").Msg("model unavailable, using fallback reply")
		}
	}

	if err := c.fallback.Stream(ctx, cc, message, captured); err != nil {
		return string(full), SourceFallback, err
	}
	return string(full), SourceFallback, nil
}
