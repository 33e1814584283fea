package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/service"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/internal/utils"
	"github.com/MKhiriev/traveltrek/internal/validators"
	"github.com/MKhiriev/traveltrek/models"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is ordered: the first matching target wins, so wrapped
// domain errors are listed before the low-level store errors they may carry.
var errorStatuses = []errorStatus{
	{validators.ErrValidation, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidID, http.StatusBadRequest},
	{ErrFileRequired, http.StatusBadRequest},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrUnauthenticated, http.StatusUnauthorized},
	{ErrRateLimitExceeded, http.StatusTooManyRequests},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrInvalidPlan, http.StatusBadRequest},
	{service.ErrMembershipAlreadyActive, http.StatusBadRequest},
	{service.ErrMembershipAlreadyPending, http.StatusBadRequest},
	{service.ErrInvalidMembershipState, http.StatusBadRequest},
	{service.ErrInsufficientDays, http.StatusBadRequest},
	{service.ErrNoFieldsToUpdate, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrMembershipNotActive, http.StatusUnauthorized},
	{service.ErrPasswordAlreadySet, http.StatusBadRequest},
	{service.ErrPasswordRequired, http.StatusBadRequest},
	{service.ErrPasswordMismatch, http.StatusBadRequest},
	{service.ErrPasswordTooShort, http.StatusBadRequest},
	{service.ErrEmailMismatch, http.StatusBadRequest},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrGoogleSignInDisabled, http.StatusServiceUnavailable},
	{service.ErrInvalidOrExpiredOTP, http.StatusBadRequest},
	{service.ErrRateLimited, http.StatusTooManyRequests},
	{service.ErrUnsupportedFileType, http.StatusBadRequest},
	{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge},

	{store.ErrEmailAlreadyExists, http.StatusConflict},
	{store.ErrMembershipAlreadyExists, http.StatusBadRequest},
	{store.ErrMembershipIDTaken, http.StatusConflict},
	{store.ErrUserNotFound, http.StatusNotFound},
	{store.ErrMembershipNotFound, http.StatusNotFound},
	{store.ErrPlanNotFound, http.StatusNotFound},
	{store.ErrDestinationNotFound, http.StatusNotFound},
	{store.ErrBrochureNotFound, http.StatusNotFound},
}

// statusFromError returns the HTTP status for err together with the sentinel
// it matched. Unknown errors map to 500 with a nil sentinel.
func statusFromError(err error) (int, error) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.target) {
			return es.status, es.target
		}
	}
	return http.StatusInternalServerError, nil
}

type errorResponse struct {
	Error      string             `json:"error"`
	Remaining  *int               `json:"remaining,omitempty"`
	ResetAt    *time.Time         `json:"resetAt,omitempty"`
	Membership *models.Membership `json:"membership,omitempty"`
}

// writeError maps err to a status code and writes a JSON error body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := statusFromError(err)
	h.writeErrorStatus(w, r, err, status)
}

// writeErrorStatus writes err with an explicit status. Client errors carry
// the sentinel message, validation errors keep their field detail and
// server errors only carry the status text.
func (h *Handler) writeErrorStatus(w http.ResponseWriter, r *http.Request, err error, status int) {
	log := logger.FromRequest(r)

	resp := errorResponse{Error: http.StatusText(status)}
	if status < http.StatusInternalServerError {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
		resp.Error = clientMessage(err)
	} else {
		log.Err(err).Int("status", status).Msg("request failed")
	}

	var rateErr *service.RateLimitError
	if errors.As(err, &rateErr) {
		wait := retryAfter(rateErr.Result.ResetAt)
		remaining := rateErr.Result.Remaining
		resetAt := rateErr.Result.ResetAt
		resp.Error = fmt.Sprintf("too many requests, please wait %d seconds", wait)
		resp.Remaining = &remaining
		resp.ResetAt = &resetAt
		w.Header().Set("Retry-After", strconv.Itoa(wait))
	}

	var pendingErr *service.AlreadyPendingError
	if errors.As(err, &pendingErr) {
		resp.Membership = &pendingErr.Membership
	}

	utils.WriteJSON(w, resp, status)
}

func clientMessage(err error) string {
	if errors.Is(err, validators.ErrValidation) {
		return strings.TrimPrefix(err.Error(), validators.ErrValidation.Error()+": ")
	}
	if _, target := statusFromError(err); target != nil {
		return target.Error()
	}
	return err.Error()
}

// retryAfter is the whole number of seconds until resetAt, at least one.
func retryAfter(resetAt time.Time) int {
	wait := int(math.Ceil(time.Until(resetAt).Seconds()))
	if wait < 1 {
		return 1
	}
	return wait
}
