// Package middleware holds the request guards. A deployment wires
// exactly one of them in front of the protected routes.
package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeroenpelgrims/cookieauth/internal/models"
	"github.com/jeroenpelgrims/cookieauth/internal/service"
	"github.com/jeroenpelgrims/cookieauth/internal/session"
	"github.com/jeroenpelgrims/cookieauth/internal/store"
	"github.com/jeroenpelgrims/cookieauth/internal/token"
)

// Context keys set by the guards for downstream handlers.
const (
	ContextUser   = "user"
	ContextClaims = "claims"
)

// TokenGuard authenticates requests from the "token" cookie alone. It
// reads no shared state; failures of every kind redirect to /login
// without saying why.
type TokenGuard struct {
	Tokens *token.Service
}

func (g *TokenGuard) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(token.CookieName)
		if err != nil || cookie.Value == "" {
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		claims, err := g.Tokens.Verify(cookie.Value)
		if err != nil {
			c.SetCookie(token.DeleteCookie(token.CookieName))
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextUser, &claims.User)
		return next(c)
	}
}

// SessionGuard resolves the "session" cookie against the session store
// and serves 401 on any failure.
type SessionGuard struct {
	Svc *service.AuthService
}

func (g *SessionGuard) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		user, err := g.Svc.CurrentUser(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) || errors.Is(err, store.ErrNotFound) {
				c.SetCookie(token.DeleteCookie(session.CookieName))
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}

		c.Set(ContextUser, user)
		return next(c)
	}
}

// UserFromContext returns the user a guard placed on the context.
func UserFromContext(c echo.Context) (*models.User, bool) {
	u, ok := c.Get(ContextUser).(*models.User)
	return u, ok
}
