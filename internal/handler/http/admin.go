package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/service"
	"github.com/MKhiriev/traveltrek/internal/utils"
	"github.com/MKhiriev/traveltrek/models"
)

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.AdminService.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.AdminService.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

// adminListMemberships accepts an optional ?status= filter.
func (h *Handler) adminListMemberships(w http.ResponseWriter, r *http.Request) {
	var status *models.MembershipStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.MembershipStatus(strings.ToUpper(raw))
		switch s {
		case models.StatusPending, models.StatusActive, models.StatusExpired:
			status = &s
		default:
			h.writeError(w, r, fmt.Errorf("%w: unknown status %q", service.ErrInvalidDataProvided, raw))
			return
		}
	}

	memberships, err := h.services.MembershipService.List(r.Context(), status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, memberships, http.StatusOK)
}

func (h *Handler) activateMembership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.MembershipService.Activate(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().
		Int64("id", id).
		Str("membership_id", result.MembershipID).
		Msg("membership activated")
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) rejectMembership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.RejectRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.MembershipService.Reject(r.Context(), id, req.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) extendMembership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var ext models.MembershipExtension
	if err = h.decode(r, &ext); err != nil {
		h.writeError(w, r, err)
		return
	}

	membership, err := h.services.MembershipService.Extend(r.Context(), id, ext)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, membership, http.StatusOK)
}

func (h *Handler) overrideMembership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var override models.MembershipOverride
	if err = h.decode(r, &override); err != nil {
		h.writeError(w, r, err)
		return
	}

	membership, err := h.services.MembershipService.ApplyOverride(r.Context(), id, override)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, membership, http.StatusOK)
}

func (h *Handler) recordUsage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var usage models.MembershipUsage
	if err = h.decode(r, &usage); err != nil {
		h.writeError(w, r, err)
		return
	}

	membership, err := h.services.MembershipService.RecordUsage(r.Context(), id, usage.Days)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, membership, http.StatusOK)
}

func (h *Handler) adminListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.services.PlanService.ListAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, plans, http.StatusOK)
}

func (h *Handler) updatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var update models.PlanConfigUpdate
	if err = h.decode(r, &update); err != nil {
		h.writeError(w, r, err)
		return
	}

	plan, err := h.services.PlanService.Update(r.Context(), id, update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, plan, http.StatusOK)
}
