package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/jeroenpelgrims/cookieauth/internal/models"
)

// MemoryStore is built once at startup and never mutated afterward, so
// concurrent reads need no locking. Matching is an exact, case-sensitive
// comparison of both fields against the cleartext demo credentials.
type MemoryStore struct {
	users map[uuid.UUID]models.User
}

func NewMemoryStore(seed []models.User) *MemoryStore {
	users := make(map[uuid.UUID]models.User, len(seed))
	for _, u := range seed {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		users[u.ID] = u
	}
	return &MemoryStore{users: users}
}

func (s *MemoryStore) Find(ctx context.Context, username, password string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username && u.Password == password {
			found := u
			return &found, nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := u
	return &found, nil
}
