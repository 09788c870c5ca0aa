package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeroenpelgrims/cookieauth/internal/config"
	"github.com/jeroenpelgrims/cookieauth/internal/logging"
	"github.com/jeroenpelgrims/cookieauth/internal/middleware"
	"github.com/jeroenpelgrims/cookieauth/internal/models"
	"github.com/jeroenpelgrims/cookieauth/internal/service"
	"github.com/jeroenpelgrims/cookieauth/internal/session"
	"github.com/jeroenpelgrims/cookieauth/internal/store"
	"github.com/jeroenpelgrims/cookieauth/internal/token"
)

const indexHTML = `<h1>Index</h1>
<ul>
    <li><a href="/protected">Protected page</a></li>
    <li><a href="/login">login</a></li>
    <li><a href="/logout">logout</a></li>
</ul>`

const loginHTML = `<h1>Login</h1>

<form method="post" action="/login" style="display: flex; flex-direction: column; gap: 1rem;">
    <label>
        Username:
        <input type="text" name="username"/>
    </label>
    <label>
        Password:
        <input type="password" name="password"/>
    </label>

    <button type="submit">Log in</button>
</form>

<a href="/">back</a>`

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Index(c echo.Context) error {
	return c.HTML(http.StatusOK, indexHTML)
}

func (h *AuthHTTP) LoginForm(c echo.Context) error {
	return c.HTML(http.StatusOK, loginHTML)
}

// Login handles the form post. Success redirects to / with the auth
// cookie of the active variant; any credential mismatch is a uniform
// 401 so callers cannot probe which field was wrong.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "login")

	var creds models.Credentials
	if err := c.Bind(&creds); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	switch h.Svc.Mode {
	case config.ModeSession:
		res, err := h.Svc.SessionLogin(ctx, creds)
		if err != nil {
			return loginError(l, err)
		}
		c.SetCookie(token.CreateCookie(session.CookieName, res.Session.ID, h.Svc.SessionTTL))
	default:
		res, err := h.Svc.TokenLogin(ctx, creds)
		if err != nil {
			return loginError(l, err)
		}
		c.SetCookie(token.CreateCookie(token.CookieName, res.Token, h.Svc.TokenTTL))
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func loginError(l *slog.Logger, err error) error {
	if errors.Is(err, store.ErrInvalidCredentials) {
		l.Warn("login_failed", "status", 401)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	l.Error("login_failed", "status", 500, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

// Logout clears the auth cookie and, in session mode, destroys the
// server-side session. In token mode the cleared cookie is all there
// is: an already-issued token stays verifiable until it expires.
func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logout")

	if h.Svc.Mode == config.ModeSession {
		if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
			if err := h.Svc.SessionLogout(ctx, cookie.Value); err != nil {
				c.SetCookie(token.DeleteCookie(session.CookieName))
				l.Error("logout_failed", "status", 500, "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}
		}
		c.SetCookie(token.DeleteCookie(session.CookieName))
	} else {
		c.SetCookie(token.DeleteCookie(token.CookieName))
	}

	l.Info("logout successful")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Protected renders the page behind the active guard.
func (h *AuthHTTP) Protected(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	return c.HTML(http.StatusOK, fmt.Sprintf(`<h1>Protected page!</h1>
<p>Hello, %s</p>
<a href="/">Back to home</a>`, user.Name))
}
