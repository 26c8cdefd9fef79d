package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/iotrelay/telemetry-api/internal/core/domain"
)

// SessionStore issues opaque bearer tokens and resolves them back to the
// username/role captured at login. Expired sessions are removed lazily on
// lookup; Sweep exists for periodic cleanup of sessions nobody touches again.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore returns a SessionStore issuing tokens valid for ttl.
// If ttl <= 0, domain.DefaultSessionTTL is used.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create issues a session with a fresh cryptographically random token.
func (s *SessionStore) Create(_ context.Context, username string, role domain.Role) (domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue session token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session := domain.Session{
		Token:     token,
		Username:  username,
		Role:      role,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	s.sessions[token] = session
	return session, nil
}

// Get returns the live session for a token. An expired session is deleted on
// access and reported as absent.
func (s *SessionStore) Get(_ context.Context, token string) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return domain.Session{}, false
	}
	if session.Expired(s.now()) {
		delete(s.sessions, token)
		return domain.Session{}, false
	}
	return session, true
}

// Sweep removes every expired session and returns how many were removed.
func (s *SessionStore) Sweep(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// newToken returns 32 random bytes hex-encoded: opaque and unguessable.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
