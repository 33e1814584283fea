package ephemeral

import "errors"

var (
	ErrGeneratingCode  = errors.New("failed to generate one-time code")
	ErrStoringCode     = errors.New("failed to store one-time code")
	ErrVerifyingCode   = errors.New("failed to verify one-time code")
	ErrCheckingLimit   = errors.New("failed to check rate limit")
	ErrInvalidLimitArg = errors.New("rate limit and window must be positive")
)
