package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/traveltrek/internal/adapter"
	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/go-resty/resty/v2"
)

// WhatsAppSender posts messages to a Twilio-compatible messaging API.
// Without a gateway URL or account it runs in dev mode.
type WhatsAppSender struct {
	client     *resty.Client
	accountSID string
	authToken  string
	from       string
	devMode    bool
	logger     *logger.Logger
}

func NewWhatsAppSender(cfg config.Notify, log *logger.Logger) *WhatsAppSender {
	return &WhatsAppSender{
		client:     adapter.NewRESTClient(adapter.RESTConfig{BaseURL: cfg.WhatsAppURL}),
		accountSID: cfg.WhatsAppAccountSID,
		authToken:  cfg.WhatsAppAuthToken,
		from:       cfg.WhatsAppFrom,
		devMode:    cfg.WhatsAppURL == "" || cfg.WhatsAppAccountSID == "",
		logger:     log,
	}
}

func (s *WhatsAppSender) Send(ctx context.Context, n models.Notification) error {
	if n.Recipient == "" {
		return ErrEmptyRecipient
	}

	if s.devMode {
		s.logger.Info().
			Str("func", "WhatsAppSender.Send").
			Str("to", n.Recipient).
			Str("kind", n.Kind).
			Msg("whatsapp not configured, message logged only")
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBasicAuth(s.accountSID, s.authToken).
		SetFormData(map[string]string{
			"From": whatsAppAddress(s.from),
			"To":   whatsAppAddress(n.Recipient),
			"Body": n.Body,
		}).
		Post(fmt.Sprintf("/Accounts/%s/Messages.json", s.accountSID))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendingWhatsApp, err)
	}
	if err = adapter.MapHTTPError(resp); err != nil {
		return fmt.Errorf("%w: %w", ErrSendingWhatsApp, err)
	}
	return nil
}

func whatsAppAddress(phone string) string {
	if strings.HasPrefix(phone, "whatsapp:") {
		return phone
	}
	return "whatsapp:" + phone
}
