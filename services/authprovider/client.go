// Package authprovider calls the external OAuth session-data endpoint
// that turns an opaque session id into user identity plus a session token.
package authprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"classtrack_go/utils"
)

// SessionData is the provider's response for a valid session id.
type SessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// Exchanger resolves an external session id to session data.
type Exchanger interface {
	Exchange(ctx context.Context, sessionID string) (*SessionData, error)
}

// Client calls the auth provider over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a client for the provider at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Exchange resolves sessionID via the provider's session-data endpoint.
// Any non-200 response, transport failure or undecodable body maps to
// ErrUpstreamAuth; callers surface it as an authentication failure.
func (c *Client) Exchange(ctx context.Context, sessionID string) (*SessionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/auth/v1/env/oauth/session-data", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: auth provider unreachable: %v", utils.ErrUpstreamAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: auth provider returned %s", utils.ErrUpstreamAuth, resp.Status)
	}

	var data SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode session data: %v", utils.ErrUpstreamAuth, err)
	}
	return &data, nil
}
