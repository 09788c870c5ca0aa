// Package token issues and verifies the signed claims carried in the
// "token" cookie by the token-based authentication variant.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jeroenpelgrims/cookieauth/internal/models"
)

// CookieName is the cookie carrying the signed token.
const CookieName = "token"

// ErrSigning means the token could not be constructed; an unsigned
// token is never handed out.
var ErrSigning = errors.New("token signing failed")

// ErrVerification covers malformed, tampered and expired tokens alike;
// callers never learn which check failed.
var ErrVerification = errors.New("token verification failed")

// Claims is the signed payload: subject, issue/expiry times and a
// snapshot of the authenticated user. The snapshot's json tags exclude
// both password fields.
type Claims struct {
	User models.User `json:"user"`
	jwt.RegisteredClaims
}

// Service signs and verifies with a single shared HS256 secret. Now is
// the verification clock; it defaults to time.Now and is swapped in
// tests to advance simulated time. Leeway is zero.
type Service struct {
	Secret []byte
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue signs claims for the authenticated user, valid for ttl.
func (s *Service) Issue(user *models.User, ttl time.Duration) (string, time.Time, error) {
	if len(s.Secret) == 0 {
		return "", time.Time{}, ErrSigning
	}

	now := s.now()
	exp := now.Add(ttl)
	claims := Claims{
		User: *user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, ErrSigning
	}
	return signed, exp, nil
}

// Verify parses the compact string, enforces HS256 and checks signature
// and expiry against the service clock.
func (s *Service) Verify(raw string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return nil, ErrVerification
	}
	return &claims, nil
}
