package models

import "time"

// Chat message roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one persisted turn of the concierge conversation.
type ChatMessage struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatRequest is the member's chat input.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatContext is the membership and catalog context handed to the
// response generator.
type ChatContext struct {
	UserName     string
	Membership   *Membership
	Status       MembershipStatus
	Destinations []Destination
	Now          time.Time
}

// ChatChunk is a streamed fragment of an assistant reply.
type ChatChunk struct {
	Chunk string `json:"chunk"`
}

// ChatDone terminates a streamed assistant reply.
type ChatDone struct {
	Done      bool  `json:"done"`
	MessageID int64 `json:"messageId"`
}
