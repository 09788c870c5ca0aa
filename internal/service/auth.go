package service

import (
	"context"
	"errors"
	"time"

	"github.com/jeroenpelgrims/cookieauth/internal/config"
	"github.com/jeroenpelgrims/cookieauth/internal/events"
	"github.com/jeroenpelgrims/cookieauth/internal/logging"
	"github.com/jeroenpelgrims/cookieauth/internal/models"
	"github.com/jeroenpelgrims/cookieauth/internal/session"
	"github.com/jeroenpelgrims/cookieauth/internal/store"
	"github.com/jeroenpelgrims/cookieauth/internal/token"
)

type AuthService struct {
	Users    store.UserStore
	Sessions session.Store
	Tokens   *token.Service
	Audit    events.Sink

	Mode       config.Mode
	TokenTTL   time.Duration
	SessionTTL time.Duration
}

type TokenLoginResult struct {
	Token  string
	Expiry time.Time
	User   *models.User
}

type SessionLoginResult struct {
	Session *models.Session
	User    *models.User
}

// Authenticate checks submitted credentials against the user store.
// Errors other than store.ErrInvalidCredentials are internal.
func (s *AuthService) Authenticate(ctx context.Context, creds models.Credentials) (*models.User, error) {
	user, err := s.Users.Find(ctx, creds.Username, creds.Password)
	if err != nil {
		if !errors.Is(err, store.ErrInvalidCredentials) {
			logging.FromContext(ctx).With("svc", "auth.authenticate").
				Error("store lookup failed", "error", err)
		}
		s.publish(ctx, events.TypeLoginFailed, creds.Username, "")
		return nil, err
	}
	return user, nil
}

// TokenLogin authenticates and issues a signed token bound to the
// authenticated user.
func (s *AuthService) TokenLogin(ctx context.Context, creds models.Credentials) (*TokenLoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.token_login", "username", creds.Username)

	user, err := s.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	signed, exp, err := s.Tokens.Issue(user, s.TokenTTL)
	if err != nil {
		l.Error("token issue failed", "error", err)
		return nil, err
	}

	l.Info("login successful")
	s.publish(ctx, events.TypeLoginSucceeded, user.Username, user.ID.String())
	return &TokenLoginResult{Token: signed, Expiry: exp, User: user}, nil
}

// SessionLogin authenticates and establishes a server-side session.
func (s *AuthService) SessionLogin(ctx context.Context, creds models.Credentials) (*SessionLoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.session_login", "username", creds.Username)

	user, err := s.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	sess, err := s.Sessions.Create(ctx, user.ID, s.SessionTTL)
	if err != nil {
		l.Error("session create failed", "error", err)
		return nil, err
	}

	l.Info("login successful")
	s.publish(ctx, events.TypeLoginSucceeded, user.Username, user.ID.String())
	return &SessionLoginResult{Session: sess, User: user}, nil
}

// SessionLogout destroys the session so a replayed cookie no longer
// resolves. An unknown session id is not an error.
func (s *AuthService) SessionLogout(ctx context.Context, sessionID string) error {
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		logging.FromContext(ctx).With("svc", "auth.session_logout").
			Error("session delete failed", "error", err)
		return err
	}
	s.publish(ctx, events.TypeLogout, "", "")
	return nil
}

// CurrentUser resolves a session cookie value to its user, or
// session.ErrNotFound for anonymous, expired and logged-out sessions.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*models.User, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.Users.Get(ctx, sess.UserID)
}

func (s *AuthService) publish(ctx context.Context, typ, username, userID string) {
	if s.Audit == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	e := events.Event{
		Type:     typ,
		Username: username,
		UserID:   userID,
		Mode:     string(s.Mode),
		At:       time.Now().UTC(),
	}
	if err := s.Audit.Publish(pubCtx, e); err != nil {
		logging.FromContext(ctx).With("svc", "auth.audit").
			Error("audit publish failed", "type", typ, "error", err)
	}
}
