package notify

import (
	"context"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/adapter"
	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/go-resty/resty/v2"
)

type pushMessage struct {
	To           string            `json:"to"`
	Notification pushContent       `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type pushContent struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PushSender posts to an FCM-compatible HTTP endpoint.
type PushSender struct {
	client    *resty.Client
	url       string
	serverKey string
	devMode   bool
	logger    *logger.Logger
}

func NewPushSender(cfg config.Notify, log *logger.Logger) *PushSender {
	return &PushSender{
		client:    adapter.NewRESTClient(adapter.RESTConfig{RetryCount: 1}),
		url:       cfg.PushURL,
		serverKey: cfg.PushServerKey,
		devMode:   cfg.PushURL == "",
		logger:    log,
	}
}

func (s *PushSender) Send(ctx context.Context, n models.Notification) error {
	if n.Recipient == "" {
		return ErrEmptyRecipient
	}

	if s.devMode {
		s.logger.Info().
			Str("func", "PushSender.Send").
			Str("title", n.Subject).
			Str("kind", n.Kind).
			Msg("push not configured, notification logged only")
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "key="+s.serverKey).
		SetHeader("Content-Type", "application/json").
		SetBody(pushMessage{
			To:           n.Recipient,
			Notification: pushContent{Title: n.Subject, Body: n.Body},
			Data:         n.Data,
		}).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendingPush, err)
	}
	if err = adapter.MapHTTPError(resp); err != nil {
		return fmt.Errorf("%w: %w", ErrSendingPush, err)
	}
	return nil
}
