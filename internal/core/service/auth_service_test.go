package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/iotrelay/telemetry-api/internal/core/domain"
)

type stubUserStore struct {
	users map[string]domain.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[string]domain.User)}
}

func (s *stubUserStore) Create(_ context.Context, user domain.User) error {
	if _, exists := s.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	s.users[user.Username] = user
	return nil
}

func (s *stubUserStore) FindByUsername(_ context.Context, username string) (domain.User, error) {
	user, ok := s.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserStore) List(_ context.Context) []domain.User {
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	counter  int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, username string, role domain.Role) (domain.Session, error) {
	s.counter++
	session := domain.Session{
		Token:     string(rune('a'+s.counter)) + "-token",
		Username:  username,
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.sessions[session.Token] = session
	return session, nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (domain.Session, bool) {
	session, ok := s.sessions[token]
	return session, ok
}

func (s *stubSessionStore) Sweep(_ context.Context) int { return 0 }

func seedUser(t *testing.T, users *stubUserStore, username, password string, role domain.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users.users[username] = domain.User{Username: username, PasswordHash: string(hash), Role: role}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserStore()
	sessions := newStubSessionStore()
	svc := NewAuthService(users, sessions, zerolog.Nop())
	seedUser(t, users, "carol", "s3cret", domain.RoleManager)

	token, role, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if role != domain.RoleManager {
		t.Fatalf("unexpected role: %s", role)
	}

	claims, ok := svc.Authenticate(context.Background(), token)
	if !ok {
		t.Fatalf("issued token did not authenticate")
	}
	if claims.Username != "carol" || claims.Role != domain.RoleManager {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserStore()
	svc := NewAuthService(users, newStubSessionStore(), zerolog.Nop())
	seedUser(t, users, "carol", "s3cret", domain.RoleAdmin)

	if _, _, err := svc.Login(context.Background(), "carol", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserStore(), newStubSessionStore(), zerolog.Nop())

	// Unknown username and wrong password must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "ghost", "pwd"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_UnknownToken(t *testing.T) {
	svc := NewAuthService(newStubUserStore(), newStubSessionStore(), zerolog.Nop())

	if _, ok := svc.Authenticate(context.Background(), "bogus"); ok {
		t.Fatalf("expected unknown token to fail")
	}
	if _, ok := svc.Authenticate(context.Background(), ""); ok {
		t.Fatalf("expected empty token to fail")
	}
}

func TestAuthService_CreateUser_HashesPassword(t *testing.T) {
	users := newStubUserStore()
	svc := NewAuthService(users, newStubSessionStore(), zerolog.Nop())

	if err := svc.CreateUser(context.Background(), "alice", "pass123", domain.RoleReporter); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	stored := users.users["alice"]
	if stored.PasswordHash == "pass123" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_CreateUser_Validation(t *testing.T) {
	svc := NewAuthService(newStubUserStore(), newStubSessionStore(), zerolog.Nop())

	if err := svc.CreateUser(context.Background(), "", "pass", domain.RoleAdmin); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if err := svc.CreateUser(context.Background(), "bob", "", domain.RoleAdmin); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
	if err := svc.CreateUser(context.Background(), "bob", "pass", domain.Role("root")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_CreateUser_Duplicate(t *testing.T) {
	svc := NewAuthService(newStubUserStore(), newStubSessionStore(), zerolog.Nop())

	if err := svc.CreateUser(context.Background(), "bob", "pass", domain.RoleManager); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if err := svc.CreateUser(context.Background(), "bob", "other", domain.RoleManager); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_ListUsers_OmitsPasswords(t *testing.T) {
	users := newStubUserStore()
	svc := NewAuthService(users, newStubSessionStore(), zerolog.Nop())
	seedUser(t, users, "alice", "pw", domain.RoleAdmin)

	infos := svc.ListUsers(context.Background())
	if len(infos) != 1 {
		t.Fatalf("expected 1 user, got %d", len(infos))
	}
	if infos[0].Username != "alice" || infos[0].Role != domain.RoleAdmin {
		t.Fatalf("unexpected user info: %+v", infos[0])
	}
}

func TestAuthService_SeedAdmin_Idempotent(t *testing.T) {
	svc := NewAuthService(newStubUserStore(), newStubSessionStore(), zerolog.Nop())

	if err := svc.SeedAdmin(context.Background(), "admin", "pw"); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := svc.SeedAdmin(context.Background(), "admin", "pw"); err != nil {
		t.Fatalf("second seed must be a no-op, got %v", err)
	}
}
