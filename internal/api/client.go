// Package api implements the HTTP client for the runhub backend, which
// proxies Strava's OAuth and REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/runhub/runhub/internal/core/activity"
	"github.com/runhub/runhub/internal/core/identity"
)

// ErrUnauthorized is returned when the backend rejects a request with an
// auth-class status.
var ErrUnauthorized = errors.New("backend rejected request as unauthorized")

// StatusError is a non-2xx response that is not auth- or rate-limit-class.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// RateLimitError carries the backend's retry hint for chat rate limiting.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// Client talks to the runhub backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a backend client. baseURL must not have a trailing slash.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// AuthorizeURL returns the browser URL that starts the OAuth flow.
func (c *Client) AuthorizeURL() string {
	return c.baseURL + "/authorize"
}

// Activities lists the user's stored runs, newest first.
func (c *Client) Activities(ctx context.Context, id identity.Identity) ([]activity.Activity, error) {
	var acts []activity.Activity
	if err := c.get(ctx, id, "/api/activities/"+id.UserID, &acts); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return acts, nil
}

// refreshResponse is the resync endpoint's body.
type refreshResponse struct {
	Activities []activity.Activity `json:"activities"`
	Changes    *activity.Changes   `json:"changes"`
}

// Refresh asks the backend to pull fresh data from Strava and returns the new
// full collection plus a change summary. A missing changes object defaults to
// all-zero counts.
func (c *Client) Refresh(ctx context.Context, id identity.Identity) ([]activity.Activity, activity.Changes, error) {
	var resp refreshResponse
	if err := c.get(ctx, id, "/api/refresh/"+id.UserID, &resp); err != nil {
		return nil, activity.Changes{}, fmt.Errorf("refresh activities: %w", err)
	}
	if resp.Activities == nil {
		return nil, activity.Changes{}, fmt.Errorf("refresh activities: response missing activities")
	}

	changes := activity.Changes{}
	if resp.Changes != nil {
		changes = *resp.Changes
	}
	return resp.Activities, changes, nil
}

// Athlete fetches the user's profile.
func (c *Client) Athlete(ctx context.Context, id identity.Identity) (activity.Athlete, error) {
	var ath activity.Athlete
	if err := c.get(ctx, id, "/api/athlete/"+id.UserID, &ath); err != nil {
		return activity.Athlete{}, fmt.Errorf("fetch athlete: %w", err)
	}
	return ath, nil
}

// Badges lists the user's earned badges.
func (c *Client) Badges(ctx context.Context, id identity.Identity) ([]activity.Badge, error) {
	var badges []activity.Badge
	if err := c.get(ctx, id, "/api/badges/"+id.UserID, &badges); err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	return badges, nil
}

// chatRequest is the chat endpoint's request body.
type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// chatResponse is the chat endpoint's response body.
type chatResponse struct {
	Response   string `json:"response"`
	RetryAfter int    `json:"retry_after"`
}

// Chat sends one message and returns the assistant's reply. A 429 response is
// returned as a *RateLimitError carrying the backend's retry hint.
func (c *Client) Chat(ctx context.Context, id identity.Identity, message string) (string, error) {
	body, err := json.Marshal(chatRequest{UserID: id.UserID, Message: message})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req, id)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send chat message: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusTooManyRequests {
		var payload chatResponse
		retryAfter := 60 * time.Second
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.RetryAfter > 0 {
			retryAfter = time.Duration(payload.RetryAfter) * time.Second
		}
		return "", &RateLimitError{RetryAfter: retryAfter}
	}
	if err := statusToError(resp.StatusCode); err != nil {
		return "", err
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	return payload.Response, nil
}

// get issues an authenticated GET and decodes the 2xx body into out. A body
// that does not match the expected shape is an error, same as a failed status.
func (c *Client) get(ctx context.Context, id identity.Identity, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.setAuth(req, id)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	if err := statusToError(resp.StatusCode); err != nil {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// setAuth attaches the API key header when the identity carries one.
func (c *Client) setAuth(req *http.Request, id identity.Identity) {
	if id.APIKey != "" {
		req.Header.Set("X-API-Key", id.APIKey)
	}
}

// statusToError maps a response status to a typed error, or nil for 2xx.
func statusToError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("status %d: %w", code, ErrUnauthorized)
	default:
		return &StatusError{Code: code}
	}
}
