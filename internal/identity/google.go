// Package identity verifies third-party identity tokens presented at
// sign-in.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/traveltrek/internal/adapter"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/go-resty/resty/v2"
)

const defaultTokenInfoURL = "https://oauth2.googleapis.com"

var (
	ErrNotConfigured = errors.New("google client id is not configured")
	ErrInvalidToken  = errors.New("google id token rejected")
)

// googleIssuers are the values Google puts in the iss claim.
var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// tokenInfo is the tokeninfo response. Google encodes booleans and
// timestamps as strings here.
type tokenInfo struct {
	Issuer        string `json:"iss"`
	Audience      string `json:"aud"`
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Expires       string `json:"exp"`
}

// GoogleVerifier checks Google ID tokens with the tokeninfo endpoint and
// accepts only tokens minted for clientID.
type GoogleVerifier struct {
	client   *resty.Client
	clientID string
	now      func() time.Time
}

// NewGoogleVerifier returns ErrNotConfigured when clientID is empty. An
// empty baseURL selects Google's public endpoint.
func NewGoogleVerifier(clientID, baseURL string, timeout time.Duration) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, ErrNotConfigured
	}
	if baseURL == "" {
		baseURL = defaultTokenInfoURL
	}

	return &GoogleVerifier{
		client:   adapter.NewRESTClient(adapter.RESTConfig{BaseURL: baseURL, Timeout: timeout, RetryCount: 1}),
		clientID: clientID,
		now:      time.Now,
	}, nil
}

// Verify returns the identity carried by idToken. Any upstream rejection,
// foreign audience or issuer, expired token or unverified email yields
// ErrInvalidToken.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (models.GoogleIdentity, error) {
	if idToken == "" {
		return models.GoogleIdentity{}, ErrInvalidToken
	}

	var info tokenInfo
	resp, err := v.client.R().
		SetContext(ctx).
		SetQueryParam("id_token", idToken).
		SetResult(&info).
		Get("/tokeninfo")
	if err != nil {
		return models.GoogleIdentity{}, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	if err = adapter.MapHTTPError(resp); err != nil {
		if errors.Is(err, adapter.ErrBadRequest) || errors.Is(err, adapter.ErrUnauthorized) {
			return models.GoogleIdentity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
		return models.GoogleIdentity{}, err
	}

	switch {
	case info.Audience != v.clientID:
		return models.GoogleIdentity{}, fmt.Errorf("%w: audience %q", ErrInvalidToken, info.Audience)
	case !googleIssuers[info.Issuer]:
		return models.GoogleIdentity{}, fmt.Errorf("%w: issuer %q", ErrInvalidToken, info.Issuer)
	case info.Subject == "" || info.Email == "":
		return models.GoogleIdentity{}, fmt.Errorf("%w: missing subject or email", ErrInvalidToken)
	case info.EmailVerified != "true":
		return models.GoogleIdentity{}, fmt.Errorf("%w: email not verified", ErrInvalidToken)
	}

	if info.Expires != "" {
		exp, err := strconv.ParseInt(info.Expires, 10, 64)
		if err != nil || !v.now().Before(time.Unix(exp, 0)) {
			return models.GoogleIdentity{}, fmt.Errorf("%w: expired", ErrInvalidToken)
		}
	}

	return models.GoogleIdentity{
		Subject: info.Subject,
		Email:   models.NormalizeEmail(info.Email),
		Name:    info.Name,
	}, nil
}
