// Package session implements the server-side session store used by the
// session-based authentication variant.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jeroenpelgrims/cookieauth/internal/models"
)

// CookieName is the cookie carrying the session identifier.
const CookieName = "session"

// ErrNotFound covers missing, deleted and expired sessions alike; the
// caller cannot tell which it was.
var ErrNotFound = errors.New("session not found")

type Store interface {
	// Create opens a session for the user and returns it.
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*models.Session, error)
	// Get resolves a live session, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Delete destroys a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
	// PurgeExpired removes expired sessions and reports how many.
	PurgeExpired(ctx context.Context) (int, error)
}
