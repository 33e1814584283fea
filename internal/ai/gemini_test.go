package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/traveltrek/internal/adapter"
	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseEvent(texts ...string) string {
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		b, _ := json.Marshal(t)
		parts = append(parts, fmt.Sprintf(`{"text":%s}`, b))
	}
	return fmt.Sprintf("data: {\"candidates\":[{\"content\":{\"role\":\"model\",\"parts\":[%s]}}]}\n\n", strings.Join(parts, ","))
}

func newGeminiServer(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGemini(config.AI{APIKey: "k", Model: "test-model", BaseURL: srv.URL})
	require.NoError(t, err)
	return g
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(config.AI{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGemini_Stream(t *testing.T) {
	var got geminiRequest
	g := newGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:streamGenerateContent", r.URL.Path)
		assert.Equal(t, "sse", r.URL.Query().Get("alt"))
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = fmt.Fprint(w, sseEvent("Hello"))
		_, _ = fmt.Fprint(w, ": keep-alive\n\n")
		_, _ = fmt.Fprint(w, sseEvent(", traveller", "!"))
	})

	var chunks []string
	err := g.Stream(context.Background(), Request{
		System:  "sys",
		Context: "ctx",
		History: []models.ChatMessage{
			{Role: models.ChatRoleUser, Content: "hi"},
			{Role: models.ChatRoleAssistant, Content: "hello"},
		},
		Message: "days left?",
	}, func(s string) error {
		chunks = append(chunks, s)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", ", traveller", "!"}, chunks)

	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "sys\n\nctx", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 3)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "model", got.Contents[1].Role)
	assert.Equal(t, "days left?", got.Contents[2].Parts[0].Text)
}

func TestGemini_StreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":"quota"}`, wantErr: adapter.ErrRateLimited},
		{name: "bad key", status: http.StatusUnauthorized, body: `{}`, wantErr: adapter.ErrUnauthorized},
		{name: "empty stream", status: http.StatusOK, body: "", wantErr: ErrEmptyReply},
		{name: "garbage event", status: http.StatusOK, body: "data: {not json\n\n", wantErr: ErrStream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGeminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, tt.body)
			})

			err := g.Stream(context.Background(), Request{Message: "x"}, func(string) error { return nil })
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGemini_StreamStopsOnSinkError(t *testing.T) {
	g := newGeminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, sseEvent("a"))
		_, _ = fmt.Fprint(w, sseEvent("b"))
	})

	stop := errors.New("client gone")
	calls := 0
	err := g.Stream(context.Background(), Request{Message: "x"}, func(string) error {
		calls++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
