package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jeroenpelgrims/cookieauth/internal/models"
)

type GormStore struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *GormStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *GormStore) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*models.Session, error) {
	now := s.now()
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.DB.WithContext(ctx).Create(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sess.Expired(s.now()) {
		_ = s.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error
}

func (s *GormStore) PurgeExpired(ctx context.Context) (int, error) {
	result := s.DB.WithContext(ctx).
		Where("expires_at <= ?", s.now()).
		Delete(&models.Session{})
	return int(result.RowsAffected), result.Error
}
