package notify

import "errors"

var (
	ErrQueueFull       = errors.New("notification queue is full")
	ErrNoSender        = errors.New("no sender registered for channel")
	ErrEmptyRecipient  = errors.New("notification has no recipient")
	ErrEncodingJob     = errors.New("failed to encode notification")
	ErrDecodingJob     = errors.New("failed to decode notification")
	ErrPushingJob      = errors.New("failed to push notification")
	ErrPoppingJob      = errors.New("failed to pop notification")
	ErrSendingEmail    = errors.New("failed to send email")
	ErrSendingWhatsApp = errors.New("failed to send whatsapp message")
	ErrSendingPush     = errors.New("failed to send push notification")
)
