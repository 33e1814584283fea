package http

import (
	"net/http"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/service"
	"github.com/MKhiriev/traveltrek/internal/utils"
	"github.com/MKhiriev/traveltrek/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header and resolves
// it to a user via [service.AuthService.Authenticate], which re-reads the
// account so that role changes and deletions take effect immediately. The
// user is stored in the request context with [utils.WithUser].
//
// Requests without a header, with a malformed header, or with a token that
// does not resolve to an existing user are rejected with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Msg("malformed authorization header")
			h.writeErrorStatus(w, r, service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user)))
	})
}

// requireRole admits only authenticated users whose role satisfies allowed.
// It must be mounted after auth.
func (h *Handler) requireRole(allowed func(models.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				h.writeError(w, r, ErrUnauthenticated)
				return
			}
			if !allowed(user.Role) {
				logger.FromRequest(r).Warn().
					Int64("user_id", user.ID).
					Str("role", string(user.Role)).
					Str("uri", r.RequestURI).
					Msg("operator route denied")
				h.writeError(w, r, service.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// supportOnly admits ADMIN, OPS and SUPPORT.
func (h *Handler) supportOnly(next http.Handler) http.Handler {
	return h.requireRole(models.Role.CanSupport)(next)
}

// opsOnly admits ADMIN and OPS.
func (h *Handler) opsOnly(next http.Handler) http.Handler {
	return h.requireRole(models.Role.CanOperate)(next)
}
