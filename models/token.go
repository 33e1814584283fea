package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a member session token. The subject claim holds the user ID
// and the email claim the address the user signed in with.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// Email is informational; authorization always reloads the user.
	Email string `json:"email,omitempty"`

	// SignedString is the compact form sent to clients.
	SignedString string `json:"-"`

	// UserID is the parsed subject claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the subject claim as a user ID.
func (t *Token) GetUserID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error reading token subject: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting token subject %q to user ID: %w", subject, err)
	}

	return userID, nil
}

func (t *Token) String() string {
	return t.SignedString
}
