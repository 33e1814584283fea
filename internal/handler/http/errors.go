// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrUnauthenticated is returned when a handler behind the auth
	// middleware finds no user in the request context.
	ErrUnauthenticated = errors.New("authentication required")

	ErrInvalidJSON       = errors.New("invalid JSON was passed")
	ErrInvalidID         = errors.New("invalid id in path")
	ErrFileRequired      = errors.New("file is required")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)
