package service

import (
	"errors"

	"github.com/MKhiriev/traveltrek/models"
)

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrInvalidPlan              = errors.New("invalid plan type")
	ErrMembershipAlreadyActive  = errors.New("membership is already active")
	ErrMembershipAlreadyPending = errors.New("membership request is already pending")
	ErrInvalidMembershipState   = errors.New("operation not allowed in current membership state")
	ErrInsufficientDays         = errors.New("not enough remaining travel days")
	ErrNoFieldsToUpdate         = errors.New("at least one field must be provided for update")

	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrMembershipNotActive     = errors.New("membership is not active")
	ErrPasswordAlreadySet      = errors.New("password is already set")
	ErrPasswordRequired        = errors.New("password is required")
	ErrPasswordMismatch        = errors.New("passwords do not match")
	ErrPasswordTooShort        = errors.New("password must be at least 6 characters")
	ErrEmailMismatch           = errors.New("email does not match membership")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrForbidden               = errors.New("insufficient permissions")
	ErrGoogleSignInDisabled    = errors.New("google sign-in is not available")

	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")
	ErrRateLimited         = errors.New("too many requests")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// RateLimitError carries the limiter state of a denied request.
type RateLimitError struct {
	Result models.RateLimitResult
}

func (e *RateLimitError) Error() string {
	return ErrRateLimited.Error()
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

// AlreadyPendingError is returned by plan selection together with the
// existing pending record.
type AlreadyPendingError struct {
	Membership models.Membership
}

func (e *AlreadyPendingError) Error() string {
	return ErrMembershipAlreadyPending.Error()
}

func (e *AlreadyPendingError) Unwrap() error {
	return ErrMembershipAlreadyPending
}
