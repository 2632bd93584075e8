package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fyrsmithlabs/taskweave/internal/auth"
)

// LoginRequest is the request body for POST /api/v1/auth.
type LoginRequest struct {
	Password string `json:"password"`
}

// handleLogin issues a session cookie when the configured password is
// presented. The password itself is never logged.
func (s *Server) handleLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if !s.sessions.CheckPassword(req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "wrong password")
	}

	c.SetCookie(s.sessions.Cookie())
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleSessionProbe(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{
		"authenticated": s.sessions.Valid(c.Request()),
	})
}

func (s *Server) handleLogout(c echo.Context) error {
	c.SetCookie(auth.ExpiredCookie())
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
