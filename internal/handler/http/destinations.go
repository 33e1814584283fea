package http

import (
	"net/http"

	"github.com/MKhiriev/traveltrek/internal/utils"
	"github.com/MKhiriev/traveltrek/models"
)

func (h *Handler) listDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.services.DestinationService.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, destinations, http.StatusOK)
}

func (h *Handler) getDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	destination, err := h.services.DestinationService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, destination, http.StatusOK)
}

func (h *Handler) createDestination(w http.ResponseWriter, r *http.Request) {
	var req models.DestinationCreate
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	destination, err := h.services.DestinationService.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, destination, http.StatusCreated)
}

func (h *Handler) updateDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var update models.DestinationUpdate
	if err = h.decode(r, &update); err != nil {
		h.writeError(w, r, err)
		return
	}

	destination, err := h.services.DestinationService.Update(r.Context(), id, update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, destination, http.StatusOK)
}

func (h *Handler) deleteDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.DestinationService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: "Destination deleted"}, http.StatusOK)
}
