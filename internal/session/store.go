// Package session holds the single authenticated Spotify session: the pending
// OAuth handshake state and the current token pair. The process owns exactly
// one session; everything lives in memory.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/radiogen/backend/internal/core/domain"
)

// ErrStateMismatch means a callback carried an unknown or expired state token.
var ErrStateMismatch = errors.New("session: unknown or expired state")

const (
	// expiryMargin refreshes slightly early so a token can't expire mid-request.
	expiryMargin = 30 * time.Second
	stateTTL     = 10 * time.Minute
)

// Store manages one OAuth session. All access is serialized: the
// read-check-refresh-write cycle in Token runs under the lock, so concurrent
// callers hitting an expired token trigger a single refresh.
type Store struct {
	cfg *oauth2.Config

	mu      sync.Mutex
	token   *oauth2.Token
	pending map[string]time.Time // state token -> issued at

	now func() time.Time
}

// NewStore creates a Store around the given OAuth2 configuration.
func NewStore(cfg *oauth2.Config) *Store {
	return &Store{
		cfg:     cfg,
		pending: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Begin starts a login: it records a fresh state token and returns the
// provider authorization URL the client should be redirected to.
func (s *Store) Begin() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prunePendingLocked()
	state := uuid.New().String()
	s.pending[state] = s.now()

	return s.cfg.AuthCodeURL(state)
}

// Exchange completes the handshake: it validates the state token and trades
// the authorization code for a token pair. On any failure the stored token is
// left untouched.
func (s *Store) Exchange(ctx context.Context, state, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	issued, ok := s.pending[state]
	delete(s.pending, state)
	if !ok || s.now().Sub(issued) > stateTTL {
		return ErrStateMismatch
	}

	tok, err := s.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: code exchange rejected: %v", domain.ErrNotAuthenticated, err)
	}

	s.token = tok
	return nil
}

// Token returns a token guaranteed to be valid past the expiry margin,
// refreshing synchronously when needed. A rejected refresh clears the session
// and the user must log in again.
func (s *Store) Token(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		return nil, domain.ErrNotAuthenticated
	}

	if s.token.Expiry.IsZero() || s.token.Expiry.After(s.now().Add(expiryMargin)) {
		tok := *s.token
		return &tok, nil
	}

	fresh, err := s.cfg.TokenSource(ctx, s.token).Token()
	if err != nil {
		s.token = nil
		return nil, fmt.Errorf("%w: token refresh rejected: %v", domain.ErrNotAuthenticated, err)
	}

	// The provider may omit the refresh token on refresh responses.
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = s.token.RefreshToken
	}
	s.token = fresh

	tok := *fresh
	return &tok, nil
}

// Authenticated reports whether a token pair has been established.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != nil
}

func (s *Store) prunePendingLocked() {
	cutoff := s.now().Add(-stateTTL)
	for state, issued := range s.pending {
		if issued.Before(cutoff) {
			delete(s.pending, state)
		}
	}
}
