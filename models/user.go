package models

import (
	"strings"
	"time"
)

// Role is the access level attached to every account.
type Role string

const (
	// RoleUser is a regular member or prospect.
	RoleUser Role = "USER"
	// RoleAdmin has full operator access.
	RoleAdmin Role = "ADMIN"
	// RoleOps may mutate memberships, plans, destinations and brochures.
	RoleOps Role = "OPS"
	// RoleSupport has read-only operator access.
	RoleSupport Role = "SUPPORT"
)

// CanOperate reports whether the role may perform mutating operator actions.
func (r Role) CanOperate() bool {
	return r == RoleAdmin || r == RoleOps
}

// CanSupport reports whether the role may read operator data.
func (r Role) CanSupport() bool {
	return r.CanOperate() || r == RoleSupport
}

// User represents an account entity used for authentication and membership
// ownership. A user owns at most one [Membership].
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is unique across all users and is stored lower-cased.
	Email string `json:"email"`

	// Phone is the contact number used for WhatsApp notifications.
	Phone string `json:"phone"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is nil for users created through enrollment or Google sign-in
	// until a password is chosen. Never exposed via JSON.
	PasswordHash *string `json:"-"`

	// PasswordSet is false until the first credential is chosen.
	PasswordSet bool `json:"passwordSet"`

	// Role controls operator access.
	Role Role `json:"role"`

	// GoogleID is the external identity identifier linked on Google sign-in.
	GoogleID *string `json:"-"`

	// FCMToken is the push-notification device token.
	FCMToken *string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Summary returns the public subset of user fields.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// UserSummary is the subset of user fields embedded into operator listings.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UserUpdate describes a partial update of a user record.
// Only non-nil fields are written.
type UserUpdate struct {
	Name         *string
	Phone        *string
	PasswordHash *string
	PasswordSet  *bool
	GoogleID     *string
	FCMToken     *string
}

// IsEmpty reports whether the update carries no fields.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.PasswordHash == nil &&
		u.PasswordSet == nil && u.GoogleID == nil && u.FCMToken == nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserWithMembership is a row of the operator user listing.
type UserWithMembership struct {
	User
	Membership *MembershipSummary `json:"membership"`
}

// MembershipSummary is the subset of membership fields shown next to a user.
type MembershipSummary struct {
	ID           int64            `json:"id"`
	PlanType     PlanType         `json:"planType"`
	Status       MembershipStatus `json:"status"`
	MembershipID *string          `json:"membershipId"`
	EndDate      *time.Time       `json:"endDate"`
}

// GoogleIdentity is the verified content of a Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}
