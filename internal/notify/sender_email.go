package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailSender delivers the email channel over SMTP. Without an SMTP host it
// runs in dev mode and only logs the message.
type EmailSender struct {
	host     string
	port     int
	user     string
	password string
	from     string
	fromName string

	sendMail sendMailFunc
	logger   *logger.Logger
}

func NewEmailSender(cfg config.Notify, log *logger.Logger) *EmailSender {
	return &EmailSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
		sendMail: smtp.SendMail,
		logger:   log,
	}
}

// DevMode reports whether messages are logged instead of sent.
func (s *EmailSender) DevMode() bool {
	return s.host == ""
}

func (s *EmailSender) Send(ctx context.Context, n models.Notification) error {
	if n.Recipient == "" {
		return ErrEmptyRecipient
	}

	if s.DevMode() {
		s.logger.Info().
			Str("func", "EmailSender.Send").
			Str("to", n.Recipient).
			Str("subject", n.Subject).
			Str("kind", n.Kind).
			Msg("smtp not configured, email logged only")
		return nil
	}

	var auth smtp.Auth
	if s.user != "" && s.password != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	if err := s.sendMail(addr, auth, s.from, []string{n.Recipient}, s.buildMessage(n)); err != nil {
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}
	return nil
}

func (s *EmailSender) buildMessage(n models.Notification) []byte {
	var b strings.Builder

	if s.fromName != "" {
		fmt.Fprintf(&b, "From: %s <%s>\r\n", s.fromName, s.from)
	} else {
		fmt.Fprintf(&b, "From: %s\r\n", s.from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", n.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", n.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	body := n.Body
	if n.HTML != "" {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
		body = n.HTML
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	}

	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
