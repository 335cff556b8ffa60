package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_store/internal/logging"
	authmw "github.com/Skotchmaster/laptop_store/internal/middleware/auth"
	"github.com/Skotchmaster/laptop_store/internal/service"
	"github.com/Skotchmaster/laptop_store/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Register(ctx, req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "reason", "username and password are required", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
		case errors.Is(err, service.ErrConflict):
			l.Warn("register_error", "status", 400, "reason", "user already exists")
			return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
		default:
			l.Error("register_error", "status", 500, "reason", "cannot register user", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
		}
	}

	l.Info("register_success", "username", req.Username)
	return c.JSON(http.StatusOK, transport.DetailResponse{Detail: "user registered"})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	username, password, ok := c.Request().BasicAuth()
	if !ok {
		l.Warn("login_error", "status", 401, "reason", "missing basic credentials")
		return authmw.Challenge(c)
	}

	role, err := h.Svc.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return authmw.Challenge(c)
		}
		l.Error("login_error", "status", 500, "reason", "cannot check credentials", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot check credentials")
	}

	l.Info("login_success", "username", username)
	return c.JSON(http.StatusOK, transport.LoginResponse{Detail: "login successful", Role: role})
}
