package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/skillswap/skillswap-web/internal/api/metrics"
	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

// AuthState caches who is signed in for every page of the process.
// All mutation happens inside its methods; callers only ever get copies.
type AuthState struct {
	auth  ports.AuthAPI
	users ports.UsersAPI
	nav   ports.Navigator
	log   zerolog.Logger

	mu            sync.RWMutex
	user          *domain.User
	authenticated bool
	loading       bool
	resolved      bool
	// generation is bumped by Logout and Reset; fetches started under an
	// older generation are discarded.
	generation uint64
	// seq numbers every GetMe as it starts; applied is the seq of the
	// cached identity so an older response never replaces a newer one.
	seq     uint64
	applied uint64

	fetches singleflight.Group
}

type fetched struct {
	user *domain.User
	seq  uint64
}

// NewAuthState returns an unresolved state with loading set.
func NewAuthState(auth ports.AuthAPI, users ports.UsersAPI, nav ports.Navigator, log zerolog.Logger) *AuthState {
	return &AuthState{
		auth:    auth,
		users:   users,
		nav:     nav,
		log:     log.With().Str("component", "auth_state").Logger(),
		loading: true,
	}
}

func (s *AuthState) Snapshot() domain.AuthSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *AuthState) snapshotLocked() domain.AuthSnapshot {
	snap := domain.AuthSnapshot{
		IsAuthenticated: s.authenticated,
		IsLoading:       s.loading,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Ensure resolves the identity on first use. Concurrent callers share one
// profile fetch. A failed fetch resolves to signed out.
func (s *AuthState) Ensure(ctx context.Context) domain.AuthSnapshot {
	s.mu.RLock()
	if s.resolved {
		defer s.mu.RUnlock()
		return s.snapshotLocked()
	}
	s.mu.RUnlock()

	res, gen, err := s.fetch(ctx)
	if err != nil && ctx.Err() != nil {
		return s.Snapshot()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		metrics.AuthStateFetchTotal.WithLabelValues("discarded").Inc()
		return s.snapshotLocked()
	}
	if s.resolved {
		return s.snapshotLocked()
	}
	if res.seq < s.applied {
		metrics.AuthStateFetchTotal.WithLabelValues("discarded").Inc()
		s.loading = false
		s.resolved = true
		return s.snapshotLocked()
	}

	user := res.user
	if err != nil || user == nil {
		if err != nil {
			s.log.Debug().Err(err).Msg("no signed-in user")
		}
		metrics.AuthStateFetchTotal.WithLabelValues("unauthenticated").Inc()
		s.user, s.authenticated = nil, false
	} else {
		metrics.AuthStateFetchTotal.WithLabelValues("authenticated").Inc()
		s.user, s.authenticated = user, true
	}
	s.applied = res.seq
	s.loading = false
	s.resolved = true
	return s.snapshotLocked()
}

// RefreshUser re-fetches the profile, e.g. after an edit or sign-in. It
// always issues its own GetMe rather than joining one already in flight.
// The loading flag is left alone and a failure keeps the cached identity.
func (s *AuthState) RefreshUser(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	seq, gen := s.seq, s.generation
	s.mu.Unlock()

	user, err := s.users.GetMe(ctx)
	if err != nil {
		metrics.AuthStateFetchTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Msg("refresh user failed")
		return fmt.Errorf("refresh user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || seq < s.applied {
		metrics.AuthStateFetchTotal.WithLabelValues("discarded").Inc()
		return nil
	}
	if user == nil {
		metrics.AuthStateFetchTotal.WithLabelValues("unauthenticated").Inc()
		return nil
	}
	metrics.AuthStateFetchTotal.WithLabelValues("authenticated").Inc()
	s.user, s.authenticated = user, true
	s.applied = seq
	return nil
}

// Logout ends the API session, clears the identity, and navigates to the
// landing page. The identity is cleared even when the API call fails.
func (s *AuthState) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("logout request failed")
	}

	s.mu.Lock()
	s.generation++
	s.user, s.authenticated = nil, false
	s.loading = false
	s.resolved = true
	s.mu.Unlock()

	s.nav.Navigate(ctx, domain.RootPath)
}

// Reset returns the state to unresolved so the next Ensure fetches again.
func (s *AuthState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.user, s.authenticated = nil, false
	s.loading = true
	s.resolved = false
}

// fetch shares one GetMe per generation between concurrent callers. The
// shared call is detached from the caller's cancellation.
func (s *AuthState) fetch(ctx context.Context) (fetched, uint64, error) {
	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	ch := s.fetches.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		s.mu.Lock()
		s.seq++
		seq := s.seq
		s.mu.Unlock()
		user, err := s.users.GetMe(context.WithoutCancel(ctx))
		return fetched{user: user, seq: seq}, err
	})

	select {
	case <-ctx.Done():
		return fetched{}, gen, ctx.Err()
	case r := <-ch:
		res, _ := r.Val.(fetched)
		return res, gen, r.Err
	}
}
