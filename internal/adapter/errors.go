package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("upstream rejected the request")
	ErrUnauthorized        = errors.New("upstream credentials rejected")
	ErrForbidden           = errors.New("upstream access forbidden")
	ErrNotFound            = errors.New("upstream resource not found")
	ErrRateLimited         = errors.New("upstream rate limit exceeded")
	ErrInternalServerError = errors.New("upstream internal error")
	ErrUnavailable         = errors.New("upstream unavailable")
)
