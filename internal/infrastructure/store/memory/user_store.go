package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iotrelay/telemetry-api/internal/core/domain"
)

// UserStore is the in-process username → user table. Users are seeded at
// startup and created by admins; no endpoint updates or deletes them.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

// Create adds a user, failing with domain.ErrUserExists on duplicates.
func (s *UserStore) Create(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	s.users[user.Username] = user
	return nil
}

// FindByUsername returns domain.ErrUserNotFound for unknown usernames.
func (s *UserStore) FindByUsername(_ context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

// List returns all users ordered by username.
func (s *UserStore) List(_ context.Context) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}
