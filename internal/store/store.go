// Package store holds the user credential store. The seeded in-memory
// store is the demo backend; the gorm store is the database-backed
// variant selected with STORE_DRIVER=sqlite|postgres.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jeroenpelgrims/cookieauth/internal/models"
)

// ErrInvalidCredentials is returned on any credential mismatch. Unknown
// username and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrNotFound = errors.New("user not found")

type UserStore interface {
	// Find matches both username and password and returns the record,
	// or ErrInvalidCredentials on any miss.
	Find(ctx context.Context, username, password string) (*models.User, error)
	// Get looks a user up by identifier.
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
}
