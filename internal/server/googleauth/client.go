// Package googleauth verifies Google OAuth access tokens against the
// provider's userinfo endpoint and returns the external identity in a single
// well-defined shape.
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dkurilov/notehub/internal/common"
)

// DefaultUserInfoEndpoint is Google's OpenID Connect userinfo endpoint.
const DefaultUserInfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"

// Profile is the verified external identity. Subject is Google's stable
// per-user identifier (the provider id stored as google_id).
type Profile struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verifier resolves an opaque provider access token to a verified Profile.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*Profile, error)
}

// Client is an HTTP Verifier against a userinfo-style introspection endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient constructs a Client for the given endpoint. An empty endpoint
// selects DefaultUserInfoEndpoint.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultUserInfoEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify calls the introspection endpoint with the bearer token. Transport
// failures, non-success statuses, and responses without a subject all yield
// common.ErrExternalAuth; the caller never sees provider response details.
func (c *Client) Verify(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExternalAuth, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExternalAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", common.ErrExternalAuth, resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExternalAuth, err)
	}
	if profile.Subject == "" || profile.Email == "" {
		return nil, fmt.Errorf("%w: incomplete profile", common.ErrExternalAuth)
	}

	return &profile, nil
}
