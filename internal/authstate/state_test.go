package authstate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veramar/litoral/internal/domain"
)

type fakeAPI struct {
	currentUser func(ctx context.Context) (*domain.User, error)
	verify      func(ctx context.Context, idToken string) (*domain.User, error)

	verifyCalls int32
	logoutCalls int32
}

func (f *fakeAPI) CurrentUser(ctx context.Context) (*domain.User, error) {
	return f.currentUser(ctx)
}

func (f *fakeAPI) Verify(ctx context.Context, idToken string) (*domain.User, error) {
	atomic.AddInt32(&f.verifyCalls, 1)
	return f.verify(ctx, idToken)
}

func (f *fakeAPI) Logout(context.Context) error {
	atomic.AddInt32(&f.logoutCalls, 1)
	return nil
}

type fakeTokens struct{ err error }

func (f fakeTokens) IDToken(context.Context) (string, error) {
	return "fresh-id-token", f.err
}

func completeUser() *domain.User {
	return &domain.User{
		ID:                1,
		Email:             "ana@example.com",
		UserType:          domain.UserTypeTourist,
		IsProfileComplete: true,
	}
}

func TestStore_InitialStateUnchecked(t *testing.T) {
	s := New(&fakeAPI{}, fakeTokens{})

	snap := s.Snapshot()
	assert.Equal(t, PhaseUnchecked, snap.Phase)
	assert.True(t, snap.Loading())
	assert.False(t, snap.IsAuthenticated())
}

func TestSignIn_ExistingBackendSession(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			return completeUser(), nil
		},
	}
	s := New(api, fakeTokens{})

	s.HandleProviderSignIn(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, PhaseLocalUserFound, snap.Phase)
	assert.True(t, snap.IsAuthenticated())
	assert.False(t, snap.Loading())
	assert.Zero(t, atomic.LoadInt32(&api.verifyCalls), "no sync needed when a session exists")
}

func TestSignIn_NoBackendSessionSyncsOnce(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			return nil, domain.ErrNoSession
		},
		verify: func(_ context.Context, idToken string) (*domain.User, error) {
			assert.Equal(t, "fresh-id-token", idToken)
			return completeUser(), nil
		},
	}
	s := New(api, fakeTokens{})

	s.HandleProviderSignIn(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, PhaseLocalUserFound, snap.Phase)
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.verifyCalls))
}

func TestSignIn_GenericFetchErrorDoesNotSync(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	s := New(api, fakeTokens{})

	s.HandleProviderSignIn(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, PhaseSyncFailed, snap.Phase)
	assert.Zero(t, atomic.LoadInt32(&api.verifyCalls),
		"transient failures must not trigger synchronization")
}

func TestSignIn_SyncFailureSettles(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			return nil, domain.ErrNoSession
		},
		verify: func(context.Context, string) (*domain.User, error) {
			return nil, errors.New("verification endpoint down")
		},
	}
	s := New(api, fakeTokens{})

	s.HandleProviderSignIn(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, PhaseSyncFailed, snap.Phase)
	assert.False(t, snap.IsAuthenticated())
	assert.False(t, snap.Loading())
}

func TestSignIn_TokenFetchFailure(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			return nil, domain.ErrNoSession
		},
	}
	s := New(api, fakeTokens{err: errors.New("provider unavailable")})

	s.HandleProviderSignIn(context.Background())

	assert.Equal(t, PhaseSyncFailed, s.Snapshot().Phase)
	assert.Zero(t, atomic.LoadInt32(&api.verifyCalls))
}

func TestRefetch_NeverRetriggersSync(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			return nil, domain.ErrNoSession
		},
		verify: func(context.Context, string) (*domain.User, error) {
			return nil, errors.New("still down")
		},
	}
	s := New(api, fakeTokens{})

	s.HandleProviderSignIn(context.Background())
	require.Equal(t, int32(1), atomic.LoadInt32(&api.verifyCalls))

	s.Refetch(context.Background())
	s.Refetch(context.Background())

	assert.Equal(t, PhaseNoLocalSession, s.Snapshot().Phase)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.verifyCalls),
		"refetching must not loop the sync call")
}

func TestRefetch_RecoversAfterTransientFailure(t *testing.T) {
	failing := true
	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			if failing {
				return nil, errors.New("connection refused")
			}
			return completeUser(), nil
		},
	}
	s := New(api, fakeTokens{})

	s.HandleProviderSignIn(context.Background())
	require.Equal(t, PhaseSyncFailed, s.Snapshot().Phase)

	failing = false
	s.Refetch(context.Background())

	assert.True(t, s.Snapshot().IsAuthenticated())
}

func TestSignOut_ClearsStateAndCallsLogout(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			return completeUser(), nil
		},
	}
	s := New(api, fakeTokens{})

	s.HandleProviderSignIn(context.Background())
	require.True(t, s.Snapshot().IsAuthenticated())

	require.NoError(t, s.HandleProviderSignOut(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, PhaseProviderAbsent, snap.Phase)
	assert.Nil(t, snap.User)
	assert.False(t, snap.IsAuthenticated())
	assert.False(t, snap.Loading())
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.logoutCalls))
}

func TestSignOut_DuringInFlightSyncDiscardsResult(t *testing.T) {
	verifyEntered := make(chan struct{})
	verifyRelease := make(chan struct{})

	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			return nil, domain.ErrNoSession
		},
		verify: func(context.Context, string) (*domain.User, error) {
			close(verifyEntered)
			<-verifyRelease
			return completeUser(), nil
		},
	}
	s := New(api, fakeTokens{})

	done := make(chan struct{})
	go func() {
		s.HandleProviderSignIn(context.Background())
		close(done)
	}()

	<-verifyEntered
	require.NoError(t, s.HandleProviderSignOut(context.Background()))

	close(verifyRelease)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sign-in flow did not finish")
	}

	snap := s.Snapshot()
	assert.Equal(t, PhaseProviderAbsent, snap.Phase)
	assert.Nil(t, snap.User, "a signed-out session must not be resurrected")
}

func TestSnapshot_DerivedBooleans(t *testing.T) {
	incomplete := completeUser()
	incomplete.IsProfileComplete = false

	admin := completeUser()
	admin.IsAdmin = true

	typedAdmin := completeUser()
	typedAdmin.UserType = domain.UserTypeAdmin

	guide := completeUser()
	guide.UserType = domain.UserTypeGuide

	operator := completeUser()
	operator.UserType = domain.UserTypeBoatTourOperator

	tests := []struct {
		name      string
		snap      Snapshot
		wantAuth  bool
		wantAdmin bool
	}{
		{name: "unchecked", snap: Snapshot{Phase: PhaseUnchecked}},
		{name: "provider absent", snap: Snapshot{Phase: PhaseProviderAbsent}},
		{name: "provider absent with stale user", snap: Snapshot{Phase: PhaseProviderAbsent, User: completeUser()}},
		{name: "found but incomplete profile", snap: Snapshot{Phase: PhaseLocalUserFound, User: incomplete}},
		{name: "syncing", snap: Snapshot{Phase: PhaseSyncing}},
		{name: "found complete", snap: Snapshot{Phase: PhaseLocalUserFound, User: completeUser()}, wantAuth: true},
		{name: "admin flag", snap: Snapshot{Phase: PhaseLocalUserFound, User: admin}, wantAuth: true, wantAdmin: true},
		{name: "admin user type", snap: Snapshot{Phase: PhaseLocalUserFound, User: typedAdmin}, wantAuth: true, wantAdmin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantAuth, tt.snap.IsAuthenticated())
			assert.Equal(t, tt.wantAdmin, tt.snap.IsAdmin())
		})
	}

	assert.True(t, Snapshot{Phase: PhaseLocalUserFound, User: guide}.IsGuide())
	assert.False(t, Snapshot{Phase: PhaseLocalUserFound, User: guide}.IsBoatOperator())
	assert.True(t, Snapshot{Phase: PhaseLocalUserFound, User: operator}.IsBoatOperator())
}

func TestSubscribe_NotifiedOnTransitions(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			return completeUser(), nil
		},
	}
	s := New(api, fakeTokens{})

	var phases []Phase
	s.Subscribe(func(snap Snapshot) {
		phases = append(phases, snap.Phase)
	})

	s.HandleProviderSignIn(context.Background())

	assert.Equal(t, []Phase{PhaseFetchingLocalUser, PhaseLocalUserFound}, phases)
}

func TestSnapshot_VersionIncreases(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (*domain.User, error) {
			return completeUser(), nil
		},
	}
	s := New(api, fakeTokens{})

	v0 := s.Snapshot().Version
	s.HandleProviderSignIn(context.Background())
	v1 := s.Snapshot().Version

	assert.Greater(t, v1, v0)
}
