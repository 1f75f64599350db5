// Package runhub implements the activity store: the single authoritative
// holder of identity, authorization status, and the activity collection.
package runhub

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/runhub/runhub/internal/core/activity"
	"github.com/runhub/runhub/internal/core/identity"
)

// ErrNotConnected is returned by operations that need an identity when none
// is resolvable. No network call is made in that case.
var ErrNotConnected = errors.New("no connected account")

// CollectionState is the three-way status of the activity list, distinct from
// its content. Consumers must branch on it: Unloaded triggers a fetch, Empty
// renders an explicit empty state, never a loading spinner.
type CollectionState int

const (
	CollectionUnloaded CollectionState = iota
	CollectionEmpty
	CollectionPopulated
)

// String implements fmt.Stringer.
func (s CollectionState) String() string {
	switch s {
	case CollectionEmpty:
		return "empty"
	case CollectionPopulated:
		return "populated"
	default:
		return "unloaded"
	}
}

// Backend is the subset of the API client the store depends on.
type Backend interface {
	Activities(ctx context.Context, id identity.Identity) ([]activity.Activity, error)
	Refresh(ctx context.Context, id identity.Identity) ([]activity.Activity, activity.Changes, error)
	Athlete(ctx context.Context, id identity.Identity) (activity.Athlete, error)
	Badges(ctx context.Context, id identity.Identity) ([]activity.Badge, error)
	Chat(ctx context.Context, id identity.Identity, message string) (string, error)
	AuthorizeURL() string
}

// Snapshot is the store's published state. Consumers read it without mutation
// rights; the Activities slice must be treated as immutable.
type Snapshot struct {
	Identity   identity.Identity
	Authorized bool
	Collection CollectionState
	Activities []activity.Activity
	Athlete    *activity.Athlete
	Loading    bool
	Refreshing bool
}

// Service is the activity store. All mutation goes through its operations;
// everything downstream reads Snapshot.
//
// Operations are safe to call from concurrent goroutines (the TUI issues them
// as background commands). The collection follows a last-issued-wins policy:
// each write-issuing operation takes a generation token, and a completion
// whose token is no longer current is discarded instead of applied.
type Service struct {
	backend Backend
	ids     identity.Store
	log     zerolog.Logger

	mu           sync.Mutex
	bootstrapped bool
	id           identity.Identity
	authorized   bool
	collection   CollectionState
	activities   []activity.Activity
	athlete      *activity.Athlete
	loading      int
	refreshing   int
	gen          uint64 // generation of the most recently issued collection write
}

// NewService creates a new activity store service.
func NewService(backend Backend, ids identity.Store, log zerolog.Logger) *Service {
	return &Service{
		backend:    backend,
		ids:        ids,
		log:        log,
		collection: CollectionUnloaded,
	}
}

// Snapshot returns the store's current published state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Identity:   s.id,
		Authorized: s.authorized,
		Collection: s.collection,
		Activities: s.activities,
		Athlete:    s.athlete,
		Loading:    s.loading > 0,
		Refreshing: s.refreshing > 0,
	}
}

// Identity returns the current identity, resolving from persistent storage if
// it has not been seeded in memory yet. Returns ErrNotConnected if neither
// source has one.
func (s *Service) Identity(ctx context.Context) (identity.Identity, error) {
	s.mu.Lock()
	if !s.id.IsZero() {
		id := s.id
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	id, err := s.ids.Load(ctx)
	if errors.Is(err, identity.ErrNoIdentity) {
		return identity.Identity{}, ErrNotConnected
	}
	if err != nil {
		return identity.Identity{}, fmt.Errorf("load identity: %w", err)
	}

	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
	return id, nil
}

// AuthorizeURL returns the backend URL that starts the OAuth flow.
func (s *Service) AuthorizeURL() string {
	return s.backend.AuthorizeURL()
}

// FetchActivities loads the activity collection from the backend. Requires a
// resolvable identity; without one it transitions to unauthorized and returns
// ErrNotConnected without touching the network.
//
// On success the collection is replaced atomically. On any failure the store
// becomes unauthorized and the collection is left empty, not unloaded, so
// consumers gating on "fetch if unloaded" do not loop against a failing
// backend.
func (s *Service) FetchActivities(ctx context.Context) error {
	id, err := s.Identity(ctx)
	if err != nil {
		s.mu.Lock()
		s.authorized = false
		s.mu.Unlock()
		return err
	}

	gen := s.beginLoad(&s.loading)
	defer s.endLoad(&s.loading)

	acts, err := s.backend.Activities(ctx, id)
	if err != nil {
		s.applyFailure(gen, err)
		return fmt.Errorf("fetch activities: %w", err)
	}

	s.applyCollection(gen, acts)
	return nil
}

// RefreshActivities asks the backend to resync from Strava and returns the
// change summary. Uses the refreshing flag, not loading, so a refresh in
// progress does not put list views into a full loading state.
func (s *Service) RefreshActivities(ctx context.Context) (activity.Changes, error) {
	id, err := s.Identity(ctx)
	if err != nil {
		s.mu.Lock()
		s.authorized = false
		s.mu.Unlock()
		return activity.Changes{}, err
	}

	gen := s.beginLoad(&s.refreshing)
	defer s.endLoad(&s.refreshing)

	acts, changes, err := s.backend.Refresh(ctx, id)
	if err != nil {
		s.applyFailure(gen, err)
		return activity.Changes{}, fmt.Errorf("refresh activities: %w", err)
	}

	s.applyCollection(gen, acts)
	s.log.Info().
		Int("added", changes.Added).
		Int("updated", changes.Updated).
		Int("deleted", changes.Deleted).
		Msg("activities refreshed")
	return changes, nil
}

// FetchAthlete loads the profile. Best-effort: failures leave the profile
// unset and never flip authorization status.
func (s *Service) FetchAthlete(ctx context.Context) error {
	id, err := s.Identity(ctx)
	if err != nil {
		return err
	}

	ath, err := s.backend.Athlete(ctx, id)
	if err != nil {
		s.log.Debug().Err(err).Msg("athlete fetch failed, leaving profile unset")
		return fmt.Errorf("fetch athlete: %w", err)
	}

	s.mu.Lock()
	s.athlete = &ath
	s.mu.Unlock()
	return nil
}

// Badges fetches the user's badges. Badges are a separate derived resource
// keyed by the store's identity; they are not held in the snapshot.
func (s *Service) Badges(ctx context.Context) ([]activity.Badge, error) {
	id, err := s.Identity(ctx)
	if err != nil {
		return nil, err
	}
	return s.backend.Badges(ctx, id)
}

// Chat sends one chat message scoped to the store's identity.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	id, err := s.Identity(ctx)
	if err != nil {
		return "", err
	}
	return s.backend.Chat(ctx, id, message)
}

// Logout clears the persisted identity and resets the store. Purely local:
// server-side session teardown is the backend's concern.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.ids.Clear(ctx); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = identity.Identity{}
	s.authorized = false
	s.collection = CollectionUnloaded
	s.activities = nil
	s.athlete = nil
	s.log.Info().Msg("logged out")
	return nil
}

// beginLoad increments the given busy counter and issues a new collection
// write generation.
func (s *Service) beginLoad(counter *int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	*counter++
	s.gen++
	return s.gen
}

// endLoad decrements the given busy counter. Runs on every exit path so the
// busy flags cannot stick on errors.
func (s *Service) endLoad(counter *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if *counter > 0 {
		*counter--
	}
}

// applyCollection replaces the activity collection if the issuing generation
// is still current; stale completions are discarded whole.
func (s *Service) applyCollection(gen uint64, acts []activity.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug().Uint64("gen", gen).Uint64("current", s.gen).Msg("discarding stale fetch result")
		return
	}

	s.activities = acts
	if len(acts) == 0 {
		s.collection = CollectionEmpty
	} else {
		s.collection = CollectionPopulated
	}
	s.authorized = true
}

// applyFailure records a failed collection write: authorization collapses and
// the collection lands on empty. Stale failures are discarded like stale
// successes, so a slow doomed request cannot clobber a newer good result.
func (s *Service) applyFailure(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}

	s.log.Warn().Err(err).Msg("activity fetch failed")
	s.authorized = false
	s.activities = nil
	s.collection = CollectionEmpty
}
