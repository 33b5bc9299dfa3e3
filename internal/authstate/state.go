// Package authstate reconciles the identity provider's sign-in state
// with the backend session on the client side. The store is an
// explicit, dependency-injected container; derived flags are pure
// functions of its snapshot, and UI layers subscribe for changes.
package authstate

import (
	"context"
	"errors"
	"sync"

	"github.com/veramar/litoral/internal/domain"
)

// Phase is the reconciliation state.
type Phase int

const (
	// PhaseUnchecked means the provider has not reported yet.
	PhaseUnchecked Phase = iota
	// PhaseProviderAbsent means the provider reports signed out.
	PhaseProviderAbsent
	// PhaseFetchingLocalUser means the backend user fetch is in flight.
	PhaseFetchingLocalUser
	// PhaseNoLocalSession means the backend has no session for a
	// signed-in provider user; synchronization is about to run.
	PhaseNoLocalSession
	// PhaseSyncing means the one-shot verification call is in flight.
	PhaseSyncing
	// PhaseLocalUserFound is the authenticated steady state.
	PhaseLocalUserFound
	// PhaseSyncFailed is the failed steady state; recovery happens by
	// refetching, never by automatically re-running the sync.
	PhaseSyncFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUnchecked:
		return "unchecked"
	case PhaseProviderAbsent:
		return "provider_absent"
	case PhaseFetchingLocalUser:
		return "fetching_local_user"
	case PhaseNoLocalSession:
		return "no_local_session"
	case PhaseSyncing:
		return "syncing"
	case PhaseLocalUserFound:
		return "local_user_found"
	case PhaseSyncFailed:
		return "sync_failed"
	}
	return "unknown"
}

// API is the backend surface the store talks to. CurrentUser must fail
// with an error wrapping domain.ErrNoSession when the backend holds no
// session, so the store can tell that apart from transient failures.
type API interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
	Verify(ctx context.Context, idToken string) (*domain.User, error)
	Logout(ctx context.Context) error
}

// TokenSource yields a fresh identity assertion for the currently
// signed-in provider user.
type TokenSource interface {
	IDToken(ctx context.Context) (string, error)
}

// Snapshot is an immutable view of the store. Version increases on
// every transition so consumers can deduplicate reactions.
type Snapshot struct {
	Phase   Phase
	User    *domain.User
	Version uint64
}

// Loading is true until the provider has reported and, for a signed-in
// provider user, until the reconciliation settled.
func (s Snapshot) Loading() bool {
	switch s.Phase {
	case PhaseUnchecked, PhaseFetchingLocalUser, PhaseNoLocalSession, PhaseSyncing:
		return true
	}
	return false
}

// IsAuthenticated requires both a provider session and a complete
// local user record. There is no optimistic-authentication state.
func (s Snapshot) IsAuthenticated() bool {
	return s.Phase == PhaseLocalUserFound && s.User != nil && s.User.IsProfileComplete
}

// IsAdmin reports admin access.
func (s Snapshot) IsAdmin() bool {
	return s.IsAuthenticated() && s.User.HasAdminAccess()
}

// IsGuide reports the guide role.
func (s Snapshot) IsGuide() bool {
	return s.IsAuthenticated() && s.User.UserType == domain.UserTypeGuide
}

// IsBoatOperator reports the boat-tour operator role.
func (s Snapshot) IsBoatOperator() bool {
	return s.IsAuthenticated() && s.User.UserType == domain.UserTypeBoatTourOperator
}

// IsEventProducer reports the event-producer role.
func (s Snapshot) IsEventProducer() bool {
	return s.IsAuthenticated() && s.User.UserType == domain.UserTypeEventProducer
}

// Store holds the reconciliation state. All methods are safe for
// concurrent use; listeners run synchronously under the transition.
type Store struct {
	api    API
	tokens TokenSource

	mu        sync.Mutex
	phase     Phase
	user      *domain.User
	epoch     uint64
	synced    bool
	version   uint64
	listeners []func(Snapshot)
}

// New creates a store in the unchecked state.
func New(api API, tokens TokenSource) *Store {
	return &Store{api: api, tokens: tokens, phase: PhaseUnchecked}
}

// Subscribe registers a listener invoked after every transition.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Phase: s.phase, User: s.user, Version: s.version}
}

func (s *Store) transitionLocked(phase Phase, user *domain.User) {
	s.phase = phase
	s.user = user
	s.version++
	snap := s.snapshotLocked()
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// HandleProviderSignIn runs the reconciliation flow for a provider
// sign-in event: fetch the local user; if the backend specifically has
// no session, synchronize exactly once by posting a fresh assertion.
// Generic fetch failures settle in PhaseSyncFailed without triggering
// the sync, so transient outages cannot cause sync storms.
func (s *Store) HandleProviderSignIn(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.synced = false
	s.transitionLocked(PhaseFetchingLocalUser, nil)
	s.mu.Unlock()

	user, err := s.api.CurrentUser(ctx)

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	if err == nil {
		s.transitionLocked(PhaseLocalUserFound, user)
		s.mu.Unlock()
		return
	}
	if !errors.Is(err, domain.ErrNoSession) {
		s.transitionLocked(PhaseSyncFailed, nil)
		s.mu.Unlock()
		return
	}
	if s.synced {
		s.transitionLocked(PhaseNoLocalSession, nil)
		s.mu.Unlock()
		return
	}
	s.synced = true
	s.transitionLocked(PhaseSyncing, nil)
	s.mu.Unlock()

	s.sync(ctx, epoch)
}

func (s *Store) sync(ctx context.Context, epoch uint64) {
	token, err := s.tokens.IDToken(ctx)
	if err == nil {
		var user *domain.User
		user, err = s.api.Verify(ctx, token)
		if err == nil {
			s.apply(epoch, PhaseLocalUserFound, user)
			return
		}
	}
	s.apply(epoch, PhaseSyncFailed, nil)
}

// apply commits a transition only if no provider event superseded the
// work that produced it. A sign-out during an in-flight sync wins: the
// arriving result is discarded and no session is resurrected.
func (s *Store) apply(epoch uint64, phase Phase, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	s.transitionLocked(phase, user)
}

// HandleProviderSignOut records a provider sign-out. Local state is
// cleared before the backend logout call, so no caller can observe a
// stale authenticated snapshot once this returns.
func (s *Store) HandleProviderSignOut(ctx context.Context) error {
	s.mu.Lock()
	s.epoch++
	s.synced = false
	s.transitionLocked(PhaseProviderAbsent, nil)
	s.mu.Unlock()

	return s.api.Logout(ctx)
}

// Refetch re-runs the local user fetch after a failure. It never
// re-triggers the one-shot sync; a sign-in that already synchronized
// stays failed until the next provider sign-in event.
func (s *Store) Refetch(ctx context.Context) {
	s.mu.Lock()
	if s.phase == PhaseUnchecked || s.phase == PhaseProviderAbsent {
		s.mu.Unlock()
		return
	}
	epoch := s.epoch
	s.transitionLocked(PhaseFetchingLocalUser, nil)
	s.mu.Unlock()

	user, err := s.api.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	switch {
	case err == nil:
		s.transitionLocked(PhaseLocalUserFound, user)
	case errors.Is(err, domain.ErrNoSession):
		s.transitionLocked(PhaseNoLocalSession, nil)
	default:
		s.transitionLocked(PhaseSyncFailed, nil)
	}
}
