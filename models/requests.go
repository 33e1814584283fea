package models

// EnrollRequest is the public enrollment payload.
type EnrollRequest struct {
	Name     string   `json:"name" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"required,min=10"`
	PlanType PlanType `json:"planType" validate:"required"`
	State    *string  `json:"state,omitempty"`
}

// ChoosePlanRequest is sent by an authenticated user selecting a plan.
type ChoosePlanRequest struct {
	PlanType PlanType `json:"planType"`
}

// RegisterRequest creates a password account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// MemberLoginRequest authenticates by membership identifier.
// Password may be empty when the member has not chosen one yet.
type MemberLoginRequest struct {
	MembershipID string `json:"membershipId" validate:"required"`
	Password     string `json:"password,omitempty"`
}

// SetMemberPasswordRequest chooses the first password of an enrolled member.
type SetMemberPasswordRequest struct {
	MembershipID    string `json:"membershipId" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// ForgotPasswordRequest starts the OTP password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes the OTP password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// GoogleAuthRequest signs in with a Google identity. IDToken is the
// credential returned to the browser and must confirm Email and GoogleID.
type GoogleAuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	GoogleID string `json:"googleId" validate:"required"`
	IDToken  string `json:"idToken" validate:"required"`
}

// UpdateProfileRequest is a partial profile update.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=10"`
}

// FCMTokenRequest registers a push-notification token.
type FCMTokenRequest struct {
	FCMToken string `json:"fcmToken" validate:"required"`
}

// ProfileChangeRequest asks for an OTP before changing a profile field.
type ProfileChangeRequest struct {
	Field    string `json:"field" validate:"required,oneof=name phone"`
	NewValue string `json:"newValue" validate:"required"`
}

// ProfileChangeVerify confirms a profile field change.
type ProfileChangeVerify struct {
	Field string `json:"field" validate:"required,oneof=name phone"`
	OTP   string `json:"otp" validate:"required"`
}

// PasswordChangeRequest asks for an OTP before changing the password.
type PasswordChangeRequest struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

// PasswordChangeVerify confirms a password change.
type PasswordChangeVerify struct {
	OTP string `json:"otp" validate:"required"`
}

// RejectRequest carries the optional operator reason.
type RejectRequest struct {
	Reason string `json:"reason,omitempty"`
}
