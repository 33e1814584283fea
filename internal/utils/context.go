// Package utils holds small helpers shared by the HTTP layer and the
// services: request-scoped context values, JSON responses, JWT handling
// and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/traveltrek/models"
)

// contextKey is a private type for context keys, so that keys from other
// packages never collide with ours.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey holds the authenticated [models.User] of the request. The
// user is re-read on every request, so its role is always current.
var UserCtxKey = contextKey("user")

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext returns the authenticated user, if any.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// GetUserIDFromContext returns the ID of the authenticated user.
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // unauthenticated request
//	}
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	user, ok := GetUserFromContext(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
