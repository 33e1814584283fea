package http

import (
	"net/http"

	"github.com/MKhiriev/traveltrek/internal/utils"
	"github.com/MKhiriev/traveltrek/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	profile, err := h.services.UserService.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UpdateProfileRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	profile, err := h.services.UserService.UpdateProfile(r.Context(), user.ID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) updateFCMToken(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.FCMTokenRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.UserService.UpdateFCMToken(r.Context(), user.ID, req.FCMToken); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: "FCM token updated"}, http.StatusOK)
}

func (h *Handler) requestProfileChange(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.ProfileChangeRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.UserService.RequestProfileChange(r.Context(), user.ID, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: "OTP sent to your email"}, http.StatusOK)
}

func (h *Handler) verifyProfileChange(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.ProfileChangeVerify
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	profile, err := h.services.UserService.VerifyProfileChange(r.Context(), user.ID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) requestPasswordChange(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.PasswordChangeRequest
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.UserService.RequestPasswordChange(r.Context(), user.ID, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: "OTP sent to your email"}, http.StatusOK)
}

func (h *Handler) verifyPasswordChange(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.PasswordChangeVerify
	if err = h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.UserService.VerifyPasswordChange(r.Context(), user.ID, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: "Password changed successfully"}, http.StatusOK)
}
