package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_store/internal/logging"
	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/service"
)

const (
	Realm = "laptop-store"

	ctxUsername = "username"
	ctxRole     = "role"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// BasicMiddleware checks HTTP Basic credentials on every request it guards.
type BasicMiddleware struct {
	Auth Authenticator
}

func NewBasicMiddleware(a Authenticator) *BasicMiddleware {
	return &BasicMiddleware{Auth: a}
}

func Challenge(c echo.Context) *echo.HTTPError {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="`+Realm+`"`)
	return echo.NewHTTPError(http.StatusUnauthorized, service.ErrUnauthorized.Error())
}

func (m *BasicMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "basic_auth")

		username, password, ok := c.Request().BasicAuth()
		if !ok {
			l.Warn("auth_error", "status", 401, "reason", "missing basic credentials")
			return Challenge(c)
		}

		user, err := m.Auth.Authenticate(ctx, username, password)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				l.Warn("auth_error", "status", 401, "reason", "invalid credentials", "username", username)
				return Challenge(c)
			}
			l.Error("auth_error", "status", 500, "reason", "cannot check credentials", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot check credentials")
		}

		c.Set(ctxUsername, user.Username)
		c.Set(ctxRole, user.Role)
		req := c.Request().WithContext(logging.IntoContext(ctx, logging.FromContext(ctx).With("username", user.Username)))
		c.SetRequest(req)
		return next(c)
	}
}

// Username returns the authenticated caller set by RequireAuth.
func Username(c echo.Context) string {
	v, _ := c.Get(ctxUsername).(string)
	return v
}

func Role(c echo.Context) string {
	v, _ := c.Get(ctxRole).(string)
	return v
}
