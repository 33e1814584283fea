package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/internal/utils"
	"github.com/MKhiriev/traveltrek/models"
)

// enroll creates a user and a pending membership in one step. A known
// email is a plain 400 here, unlike registration.
func (h *Handler) enroll(w http.ResponseWriter, r *http.Request) {
	var req models.EnrollRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.MembershipService.Enroll(r.Context(), req)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		h.writeErrorStatus(w, r, err, http.StatusBadRequest)
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().
		Int64("user_id", result.UserID).
		Int64("membership_id", result.MembershipID).
		Str("plan", string(result.PlanType)).
		Msg("enrollment received")
	utils.WriteJSON(w, result, http.StatusCreated)
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.services.PlanService.ListActive(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, plans, http.StatusOK)
}

func (h *Handler) getMembership(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	state, err := h.services.MembershipService.Get(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, state, http.StatusOK)
}

func (h *Handler) choosePlan(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.ChoosePlanRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.MembershipService.ChoosePlan(r.Context(), user.ID, req.PlanType)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusCreated)
}

func (h *Handler) cancelMembership(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.MembershipService.Cancel(r.Context(), user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: "Membership request cancelled"}, http.StatusOK)
}

func (h *Handler) paymentDone(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.PaymentDoneRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.MembershipService.MarkPaymentDone(r.Context(), user.ID, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: "Payment recorded, awaiting verification"}, http.StatusOK)
}
