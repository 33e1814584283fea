package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/service"
	"github.com/MKhiriev/traveltrek/internal/utils"
	"github.com/MKhiriev/traveltrek/models"
)

func (h *Handler) listBrochures(w http.ResponseWriter, r *http.Request) {
	brochures, err := h.services.BrochureService.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, brochures, http.StatusOK)
}

func (h *Handler) createBrochure(w http.ResponseWriter, r *http.Request) {
	var brochure models.Brochure
	if err := h.decode(r, &brochure); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.services.BrochureService.Create(r.Context(), brochure)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) deleteBrochure(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.BrochureService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: "Brochure deleted"}, http.StatusOK)
}

// upload accepts a single multipart "file" part.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	// Room for the multipart envelope around a maximum-size file.
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, r, service.ErrFileTooLarge)
			return
		}
		logger.FromRequest(r).Debug().Err(err).Msg("multipart file missing")
		h.writeError(w, r, ErrFileRequired)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	uploaded, err := h.services.UploadService.Upload(r.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, uploaded, http.StatusCreated)
}
