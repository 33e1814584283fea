package models

// Channel is a notification delivery channel.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelPush     Channel = "push"
)

// Notification kinds, used for metrics and logging.
const (
	NotificationActivation = "activation"
	NotificationWelcome    = "welcome"
	NotificationOTP        = "otp"
	NotificationRejection  = "rejection"
)

// Notification is a single unit of outbound delivery work.
// It is serialized to JSON when a distributed queue is used.
type Notification struct {
	// Kind describes what triggered the notification.
	Kind string `json:"kind"`

	Channel Channel `json:"channel"`

	// Recipient is an email address, a phone number or a push token,
	// depending on Channel.
	Recipient string `json:"recipient"`

	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`

	// HTML is an optional rich body for the email channel.
	HTML string `json:"html,omitempty"`

	// Data is an optional payload for the push channel.
	Data map[string]string `json:"data,omitempty"`

	// Attempts counts delivery attempts already made.
	Attempts int `json:"attempts"`
}
