package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeroenpelgrims/cookieauth/internal/config"
	"github.com/jeroenpelgrims/cookieauth/internal/middleware"
)

type Deps struct {
	AuthHandler  *AuthHTTP
	TokenGuard   *middleware.TokenGuard
	SessionGuard *middleware.SessionGuard
	Mode         config.Mode
}

// Register wires the routes. The protected group gets exactly one
// guard, chosen by the configured variant; token and session auth are
// never mixed on the same resource.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/", d.AuthHandler.Index)
	e.GET("/login", d.AuthHandler.LoginForm)
	e.POST("/login", d.AuthHandler.Login)
	e.GET("/logout", d.AuthHandler.Logout)

	protected := e.Group("/protected")
	if d.Mode == config.ModeSession {
		protected.Use(d.SessionGuard.RequireSession)
	} else {
		protected.Use(d.TokenGuard.RequireToken)
	}
	protected.GET("", d.AuthHandler.Protected)
}
