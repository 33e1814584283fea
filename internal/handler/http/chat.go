package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/utils"
	"github.com/MKhiriev/traveltrek/models"
)

// sseSink streams a chat reply as server-sent events. Headers are sent
// with the first event, so failures before any output can still be
// answered with a regular JSON error.
type sseSink struct {
	w       http.ResponseWriter
	started bool
}

func newSSESink(w http.ResponseWriter) *sseSink {
	return &sseSink{w: w}
}

func (s *sseSink) Chunk(text string) error {
	return s.event(models.ChatChunk{Chunk: text})
}

func (s *sseSink) Done(messageID int64) error {
	return s.event(models.ChatDone{Done: true, MessageID: messageID})
}

func (s *sseSink) event(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if !s.started {
		h := s.w.Header()
		h.Set("Content-Type", eventStreamContentType)
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}

	if _, err = fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// The message is checked by the service after the rate limit.
	var req models.ChatRequest
	if err = decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	sink := newSSESink(w)
	err = h.services.ChatService.Send(r.Context(), user.ID, req.Message, sink)
	if err == nil {
		return
	}

	if !sink.started {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Err(err).Int64("user_id", user.ID).Msg("chat stream interrupted")
	_ = sink.event(errorResponse{Error: "Failed to get AI response"})
}

func (h *Handler) chatHistory(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	messages, err := h.services.ChatService.History(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, messages, http.StatusOK)
}

func (h *Handler) clearChatHistory(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.ChatService.ClearHistory(r.Context(), user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: "Chat history cleared"}, http.StatusOK)
}
