package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jeroenpelgrims/cookieauth/internal/hash"
	"github.com/jeroenpelgrims/cookieauth/internal/models"
)

// GormStore keeps bcrypt hashes instead of cleartext passwords. The
// uniform ErrInvalidCredentials from both lookup and hash check keeps
// the anti-enumeration property of the memory store.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) Find(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *GormStore) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Seed creates the user unless the username is already taken.
func (s *GormStore) Seed(ctx context.Context, name, username, password string) error {
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Username:     username,
		PasswordHash: pwHash,
	}
	tx := s.DB.WithContext(ctx).Where("username = ?", username).FirstOrCreate(&user)
	return tx.Error
}
