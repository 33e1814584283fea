package models

import "time"

// Payment statuses of a recorded payment attempt.
const (
	PaymentAttemptSuccess = "SUCCESS"
	PaymentAttemptFailed  = "FAILED"
)

// Payment is a manual payment attempt recorded by a member.
type Payment struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	MembershipID     int64     `json:"membershipId"`
	Amount           int64     `json:"amount"`
	Method           string    `json:"method"`
	GatewayReference *string   `json:"gatewayReference"`
	Notes            *string   `json:"notes"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// PaymentDoneRequest is sent by a member after paying through the manual rail.
type PaymentDoneRequest struct {
	PaymentMethod string  `json:"paymentMethod"`
	TransactionID *string `json:"transactionId,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}
