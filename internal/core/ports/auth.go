package ports

import (
	"context"

	"github.com/iotrelay/telemetry-api/internal/core/domain"
)

// Claims identifies the authenticated caller of a request.
type Claims struct {
	Username string
	Role     domain.Role
}

// AuthService covers login, token validation, and user management.
type AuthService interface {
	// Login verifies credentials and issues a fresh session token.
	Login(ctx context.Context, username, password string) (token string, role domain.Role, err error)

	// Authenticate resolves a bearer token to its claims. It returns false
	// for unknown or expired tokens; expired sessions are deleted as a side
	// effect of the lookup.
	Authenticate(ctx context.Context, token string) (Claims, bool)

	CreateUser(ctx context.Context, username, password string, role domain.Role) error
	ListUsers(ctx context.Context) []domain.UserInfo
}

// UserStore is the username → user mapping.
type UserStore interface {
	// Create adds a user; domain.ErrUserExists on duplicate username.
	Create(ctx context.Context, user domain.User) error

	// FindByUsername returns domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (domain.User, error)

	List(ctx context.Context) []domain.User
}

// SessionStore issues and resolves bearer tokens.
type SessionStore interface {
	// Create issues a session with a fresh unguessable token.
	Create(ctx context.Context, username string, role domain.Role) (domain.Session, error)

	// Get returns the live session for a token. Expired sessions are deleted
	// on access and reported as absent.
	Get(ctx context.Context, token string) (domain.Session, bool)

	// Sweep removes all expired sessions and returns how many were removed.
	Sweep(ctx context.Context) int
}
