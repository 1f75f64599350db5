package runhub

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/runhub/runhub/internal/core/identity"
)

// BootstrapSource says how the session learned about the user.
type BootstrapSource int

const (
	// SourceNone means no identity was found anywhere; the session starts
	// unauthorized.
	SourceNone BootstrapSource = iota
	// SourceRedirect means the identity came from OAuth redirect parameters.
	SourceRedirect
	// SourceStorage means the identity came from the persisted identity file.
	SourceStorage
)

// BootstrapResult reports the outcome of identity reconciliation.
type BootstrapResult struct {
	Source   BootstrapSource
	Identity identity.Identity
	// CleanURL is the redirect URL with the auth parameters stripped, so the
	// same parameters are not reprocessed if the URL is reused.
	CleanURL string
	// AuthError is the backend's error code when the redirect carried
	// ?error= instead of a user id. A failed authorization, not a transient
	// condition to retry.
	AuthError string
}

// Bootstrap establishes the session identity. Two mutually exclusive sources,
// in fixed priority order: redirect URL query parameters first, then the
// persisted identity file. A redirect identity is persisted before use, so a
// later run lands on the storage branch with the same user.
//
// With an empty redirectURL this runs at most once per process; repeat calls
// return the already-reconciled state. No network calls are made either way.
func (s *Service) Bootstrap(ctx context.Context, redirectURL string) (BootstrapResult, error) {
	if redirectURL != "" {
		res, handled, err := s.bootstrapFromRedirect(ctx, redirectURL)
		if err != nil || handled {
			return res, err
		}
		// URL carried no auth parameters; fall through to storage.
	}

	s.mu.Lock()
	if s.bootstrapped {
		res := BootstrapResult{Source: SourceNone}
		if !s.id.IsZero() {
			res = BootstrapResult{Source: SourceStorage, Identity: s.id}
		}
		s.mu.Unlock()
		return res, nil
	}
	s.bootstrapped = true
	s.mu.Unlock()

	id, err := s.ids.Load(ctx)
	if errors.Is(err, identity.ErrNoIdentity) {
		s.log.Debug().Msg("no stored identity, starting unauthorized")
		return BootstrapResult{Source: SourceNone}, nil
	}
	if err != nil {
		return BootstrapResult{}, fmt.Errorf("load identity: %w", err)
	}

	s.mu.Lock()
	s.id = id
	s.authorized = true
	s.mu.Unlock()

	s.log.Debug().Str("user_id", id.UserID).Msg("identity restored from storage")
	return BootstrapResult{Source: SourceStorage, Identity: id}, nil
}

// bootstrapFromRedirect handles the redirect-parameter branch. handled is
// false when the URL carries none of the recognized parameters.
func (s *Service) bootstrapFromRedirect(ctx context.Context, redirectURL string) (BootstrapResult, bool, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return BootstrapResult{}, false, fmt.Errorf("parse redirect URL: %w", err)
	}

	q := u.Query()
	userID := q.Get("user_id")
	apiKey := q.Get("api_key")
	authErr := q.Get("error")

	if userID == "" && authErr == "" {
		return BootstrapResult{}, false, nil
	}

	s.mu.Lock()
	s.bootstrapped = true
	s.mu.Unlock()

	if authErr != "" {
		s.mu.Lock()
		s.authorized = false
		s.mu.Unlock()
		s.log.Warn().Str("error", authErr).Msg("authorization failed at provider")
		return BootstrapResult{Source: SourceRedirect, AuthError: authErr}, true, nil
	}

	id := identity.Identity{UserID: userID, APIKey: apiKey}
	if err := s.ids.Save(ctx, id); err != nil {
		return BootstrapResult{}, true, fmt.Errorf("persist identity: %w", err)
	}

	s.mu.Lock()
	s.id = id
	s.authorized = true
	s.mu.Unlock()

	s.log.Info().Str("user_id", id.UserID).Msg("identity established from redirect")
	return BootstrapResult{
		Source:   SourceRedirect,
		Identity: id,
		CleanURL: stripAuthParams(u),
	}, true, nil
}

// stripAuthParams removes the auth query parameters from the URL and returns
// the cleaned string form.
func stripAuthParams(u *url.URL) string {
	q := u.Query()
	q.Del("user_id")
	q.Del("api_key")
	q.Del("error")
	u.RawQuery = q.Encode()
	return u.String()
}
