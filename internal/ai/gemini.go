// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/traveltrek/internal/adapter"
	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"

	// maxLineSize caps one SSE line; a single event never approaches it.
	maxLineSize = 1 << 20
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiChunk struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Gemini streams replies from the Gemini generateContent API over
// server-sent events.
type Gemini struct {
	client *resty.Client
	apiKey string
	model  string
}

// NewGemini returns a client for cfg, or ErrNotConfigured when no API key
// is set.
func NewGemini(cfg config.AI) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Gemini{
		client: adapter.NewRESTClient(adapter.RESTConfig{BaseURL: baseURL, Timeout: cfg.Timeout}),
		apiKey: cfg.APIKey,
		model:  model,
	}, nil
}

func (g *Gemini) Stream(ctx context.Context, req Request, onChunk func(string) error) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "text/event-stream").
		SetPathParam("model", g.model).
		SetQueryParam("alt", "sse").
		SetQueryParam("key", g.apiKey).
		SetBody(buildGeminiRequest(req)).
		Post("/models/{model}:streamGenerateContent")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStream, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(body, 4096))
		return fmt.Errorf("%w: %w", ErrStream, adapter.MapStatus(resp.StatusCode(), raw))
	}

	emitted, err := readSSE(body, onChunk)
	if err != nil {
		return err
	}
	if emitted == 0 {
		return ErrEmptyReply
	}
	return nil
}

func buildGeminiRequest(req Request) geminiRequest {
	system := req.System
	if req.Context != "" {
		system += "\n\n" + req.Context
	}

	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, m := range req.History {
		role := "user"
		if m.Role != models.ChatRoleUser {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: req.Message}}})

	return geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          contents,
	}
}

// readSSE forwards the text parts of every "data:" event and returns the
// number of chunks emitted.
func readSSE(r io.Reader, onChunk func(string) error) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	emitted := 0
	for sc.Scan() {
		line := sc.Text()
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk geminiChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return emitted, fmt.Errorf("%w: decode event: %w", ErrStream, err)
		}
		for _, c := range chunk.Candidates {
			for _, p := range c.Content.Parts {
				if p.Text == "" {
					continue
				}
				if err := onChunk(p.Text); err != nil {
					return emitted, err
				}
				emitted++
			}
		}
	}
	if err := sc.Err(); err != nil {
		return emitted, fmt.Errorf("%w: %w", ErrStream, err)
	}
	return emitted, nil
}
