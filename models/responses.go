package models

// EnrollResult is returned after a successful public enrollment.
type EnrollResult struct {
	UserID       int64            `json:"userId"`
	MembershipID int64            `json:"membershipId"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	PlanType     PlanType         `json:"planType"`
	State        *string          `json:"state"`
	Status       MembershipStatus `json:"status"`
}

// ChoosePlanResult is returned after a plan selection.
type ChoosePlanResult struct {
	Membership Membership `json:"membership"`
	PlanName   string     `json:"planName"`
	Price      int64      `json:"price"`
}

// MembershipState is the member-facing read of the lifecycle.
// Membership is nil and Plans is set when no membership exists.
type MembershipState struct {
	Membership *MembershipView  `json:"membership"`
	Status     MembershipStatus `json:"status"`
	Message    string           `json:"message,omitempty"`
	Plans      []PlanConfig     `json:"plans,omitempty"`
}

// AuthResult carries an issued token with the authenticated user.
type AuthResult struct {
	Token         string `json:"token"`
	User          User   `json:"user"`
	HasMembership bool   `json:"hasMembership"`
}

// MemberLoginResult is returned by member login. When NeedsPasswordSetup
// is true no token is issued.
type MemberLoginResult struct {
	NeedsPasswordSetup bool        `json:"needsPasswordSetup"`
	Email              string      `json:"email,omitempty"`
	MembershipID       string      `json:"membershipId,omitempty"`
	Auth               *AuthResult `json:"auth,omitempty"`
}
