package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runhub/runhub/internal/core/identity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zerolog.Nop())
}

func TestActivities(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/activities/42", r.URL.Path)
		assert.Equal(t, "abc", r.Header.Get("X-API-Key"))
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Morning Run", "distance": 5000, "moving_time": 1500, "start_date": "2026-08-24T07:00:00Z"},
			{"id": 2, "name": "Evening Run", "distance": 3218, "moving_time": 1200, "start_date": "2026-08-23T18:00:00Z"}
		]`))
	})

	acts, err := client.Activities(context.Background(), identity.Identity{UserID: "42", APIKey: "abc"})
	require.NoError(t, err)
	require.Len(t, acts, 2)
	assert.Equal(t, "Morning Run", acts[0].Name)
	assert.Equal(t, 5000.0, acts[0].Distance)
	assert.Equal(t, 1500, acts[0].MovingTime)
}

func TestActivities_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Unauthorized"}`))
	})

	_, err := client.Activities(context.Background(), identity.Identity{UserID: "42"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestActivities_MalformedBody(t *testing.T) {
	// A 2xx error object where an array is expected must fail, not silently
	// produce an empty list.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "not authorized with strava"}`))
	})

	_, err := client.Activities(context.Background(), identity.Identity{UserID: "42"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestRefresh(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/refresh/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"activities": []map[string]any{{"id": 1, "name": "Run", "distance": 1609, "moving_time": 300, "start_date": "2026-08-24T07:00:00Z"}},
			"changes":    map[string]int{"added": 1, "updated": 0, "deleted": 2},
		})
	})

	acts, changes, err := client.Refresh(context.Background(), identity.Identity{UserID: "42"})
	require.NoError(t, err)
	assert.Len(t, acts, 1)
	assert.Equal(t, 1, changes.Added)
	assert.Equal(t, 2, changes.Deleted)
}

func TestRefresh_MissingChangesDefaultsToZero(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"activities": []}`))
	})

	acts, changes, err := client.Refresh(context.Background(), identity.Identity{UserID: "42"})
	require.NoError(t, err)
	assert.Empty(t, acts)
	assert.Zero(t, changes.Added)
	assert.Zero(t, changes.Updated)
	assert.Zero(t, changes.Deleted)
}

func TestRefresh_MissingActivities(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"changes": {"added": 0}}`))
	})

	_, _, err := client.Refresh(context.Background(), identity.Identity{UserID: "42"})
	assert.Error(t, err)
}

func TestAthlete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/athlete/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"firstname": "Ada", "lastname": "Lovelace", "username": "ada", "profile": "http://img"}`))
	})

	ath, err := client.Athlete(context.Background(), identity.Identity{UserID: "42"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", ath.DisplayName())
}

func TestBadges(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/badges/42", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": 1, "name": "First Run", "icon": "first.png", "earned_date": "2026-08-01T00:00:00Z"}]`))
	})

	badges, err := client.Badges(context.Background(), identity.Identity{UserID: "42"})
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "First Run", badges[0].Name)
}

func TestChat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "42", req["user_id"])
		assert.Equal(t, "how was my week?", req["message"])

		_, _ = w.Write([]byte(`{"response": "You ran 20 miles."}`))
	})

	reply, err := client.Chat(context.Background(), identity.Identity{UserID: "42"}, "how was my week?")
	require.NoError(t, err)
	assert.Equal(t, "You ran 20 miles.", reply)
}

func TestChat_RateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"retry_after": 90}`))
	})

	_, err := client.Chat(context.Background(), identity.Identity{UserID: "42"}, "hi")

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 90*time.Second, rateErr.RetryAfter)
}

func TestChat_RateLimitedWithoutHint(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Chat(context.Background(), identity.Identity{UserID: "42"}, "hi")

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 60*time.Second, rateErr.RetryAfter)
}

func TestStatusToError(t *testing.T) {
	assert.NoError(t, statusToError(200))
	assert.NoError(t, statusToError(204))
	assert.ErrorIs(t, statusToError(401), ErrUnauthorized)
	assert.ErrorIs(t, statusToError(403), ErrUnauthorized)

	var statusErr *StatusError
	require.True(t, errors.As(statusToError(500), &statusErr))
	assert.Equal(t, 500, statusErr.Code)
}
