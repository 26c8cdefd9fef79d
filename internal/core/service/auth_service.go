package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/iotrelay/telemetry-api/internal/api/metrics"
	"github.com/iotrelay/telemetry-api/internal/core/domain"
	"github.com/iotrelay/telemetry-api/internal/core/ports"
)

// AuthService implements login, token validation, and user management over
// the user and session stores.
type AuthService struct {
	users    ports.UserStore
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthService(users ports.UserStore, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

// Login verifies credentials and issues a session token. Unknown username and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.Role, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.log.Warn().Str("username", username).Msg("login failed")
		return "", "", domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.Username, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", username).Str("role", string(user.Role)).Msg("login succeeded")
	return session.Token, user.Role, nil
}

// Authenticate resolves a bearer token via the session store. Expiry handling
// (lazy deletion) lives in the store.
func (s *AuthService) Authenticate(ctx context.Context, token string) (ports.Claims, bool) {
	if token == "" {
		return ports.Claims{}, false
	}
	session, ok := s.sessions.Get(ctx, token)
	if !ok {
		return ports.Claims{}, false
	}
	return ports.Claims{Username: session.Username, Role: session.Role}, true
}

// CreateUser hashes the password and adds the user. Role membership in the
// closed set is enforced here; the admin-only restriction is the router's job.
func (s *AuthService) CreateUser(ctx context.Context, username, password string, role domain.Role) error {
	if username == "" || password == "" {
		return domain.ErrInvalidCredentials
	}
	if !role.Valid() {
		return domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Str("role", string(role)).Msg("user created")
	return nil
}

// ListUsers returns every user without password material.
func (s *AuthService) ListUsers(ctx context.Context) []domain.UserInfo {
	users := s.users.List(ctx)
	infos := make([]domain.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, domain.UserInfo{Username: u.Username, Role: u.Role})
	}
	return infos
}

// SeedAdmin ensures a bootstrap admin exists so the admin-only user endpoints
// are reachable on a fresh process. An existing username is left untouched.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	err := s.CreateUser(ctx, username, password, domain.RoleAdmin)
	if err == domain.ErrUserExists {
		return nil
	}
	return err
}
