// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the shared transport for outbound REST calls to
// third-party providers: the WhatsApp gateway, the push gateway and the
// language-model API.
//
// [NewRESTClient] returns a preconfigured resty client. Error values defined
// in errors.go are mapped from HTTP status codes by [MapHTTPError] so that
// callers can use [errors.Is] for provider-agnostic error handling (e.g.
// [ErrRateLimited] for 429, [ErrUnauthorized] for 401).
package adapter

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RESTConfig configures a provider client.
type RESTConfig struct {
	BaseURL string
	Timeout time.Duration

	// RetryCount is the number of extra attempts on transport errors and
	// 5xx responses. Zero disables retries.
	RetryCount int
}

const defaultTimeout = 15 * time.Second

// NewRESTClient creates a resty client for one provider.
func NewRESTClient(cfg RESTConfig) *resty.Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.RetryCount > 0 {
		cli.SetRetryCount(cfg.RetryCount).
			SetRetryWaitTime(200 * time.Millisecond).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= 500
			})
	}

	return cli
}
