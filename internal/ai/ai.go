// Package ai produces chat concierge replies. A language-model client
// streams replies when an API key is configured; a rule-based responder
// answers otherwise, and whenever the model fails before emitting text.
package ai

import (
	"context"
	"errors"

	"github.com/MKhiriev/traveltrek/models"
)

// Request is everything a generator needs to answer one member message.
type Request struct {
	System  string
	Context string
	History []models.ChatMessage
	Message string
}

// Generator streams a reply, calling onChunk for every text fragment in
// order. A non-nil error from onChunk aborts the stream.
type Generator interface {
	Stream(ctx context.Context, req Request, onChunk func(chunk string) error) error
}

var (
	ErrNotConfigured = errors.New("language model is not configured")
	ErrEmptyReply    = errors.New("language model returned no text")
	ErrStream        = errors.New("language model stream failed")
)
