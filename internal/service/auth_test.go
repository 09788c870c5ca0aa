package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeroenpelgrims/cookieauth/internal/config"
	"github.com/jeroenpelgrims/cookieauth/internal/events"
	"github.com/jeroenpelgrims/cookieauth/internal/models"
	"github.com/jeroenpelgrims/cookieauth/internal/session"
	"github.com/jeroenpelgrims/cookieauth/internal/store"
	"github.com/jeroenpelgrims/cookieauth/internal/token"
)

type recordingSink struct {
	published []events.Event
}

func (r *recordingSink) Publish(ctx context.Context, e events.Event) error {
	r.published = append(r.published, e)
	return nil
}

func (r *recordingSink) Close() error { return nil }

func newTestAuthService(mode config.Mode) (*AuthService, *recordingSink) {
	sink := &recordingSink{}
	svc := &AuthService{
		Users: store.NewMemoryStore([]models.User{
			{Name: "Joske Vermeulen", Username: "user", Password: "pass"},
		}),
		Sessions:   session.NewMemoryStore(),
		Tokens:     &token.Service{Secret: []byte("test-jwt-secret")},
		Audit:      sink,
		Mode:       mode,
		TokenTTL:   time.Hour,
		SessionTTL: time.Hour,
	}
	return svc, sink
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(config.ModeToken)
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, models.Credentials{Username: "user", Password: "pass"})
	require.NoError(t, err)
	assert.Equal(t, "user", user.Username)

	_, err = svc.Authenticate(ctx, models.Credentials{Username: "user", Password: "wrong"})
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, models.Credentials{Username: "nobody", Password: "pass"})
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestAuthService_TokenLogin_BindsAuthenticatedUser(t *testing.T) {
	t.Parallel()

	svc, sink := newTestAuthService(config.ModeToken)
	ctx := context.Background()

	res, err := svc.TokenLogin(ctx, models.Credentials{Username: "user", Password: "pass"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	claims, err := svc.Tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID.String(), claims.Subject)
	assert.Equal(t, "user", claims.User.Username)
	assert.Equal(t, "Joske Vermeulen", claims.User.Name)

	require.Len(t, sink.published, 1)
	assert.Equal(t, events.TypeLoginSucceeded, sink.published[0].Type)
	assert.Equal(t, "user", sink.published[0].Username)
}

func TestAuthService_TokenLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, sink := newTestAuthService(config.ModeToken)

	_, err := svc.TokenLogin(context.Background(), models.Credentials{Username: "user", Password: "wrong"})
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	require.Len(t, sink.published, 1)
	assert.Equal(t, events.TypeLoginFailed, sink.published[0].Type)
}

func TestAuthService_TokenLogin_MissingSecret(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(config.ModeToken)
	svc.Tokens = &token.Service{}

	_, err := svc.TokenLogin(context.Background(), models.Credentials{Username: "user", Password: "pass"})
	assert.ErrorIs(t, err, token.ErrSigning)
}

func TestAuthService_SessionLoginLogout(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(config.ModeSession)
	ctx := context.Background()

	res, err := svc.SessionLogin(ctx, models.Credentials{Username: "user", Password: "pass"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Session.ID)

	user, err := svc.CurrentUser(ctx, res.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)

	require.NoError(t, svc.SessionLogout(ctx, res.Session.ID))

	// the old identifier is Anonymous again
	_, err = svc.CurrentUser(ctx, res.Session.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestAuthService_CurrentUser_Unknown(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(config.ModeSession)
	_, err := svc.CurrentUser(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
