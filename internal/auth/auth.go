// Package auth implements the HMAC-signed session cookie guarding the
// HTTP API. Sessions carry no user identity, only proof that the
// configured app password was presented.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the session cookie name.
	CookieName = "session"

	// MaxAge is the session lifetime.
	MaxAge = 7 * 24 * time.Hour

	// sessionValue is the only value ever signed into a cookie.
	sessionValue = "authenticated"
)

// Sessions signs and verifies session cookies with a shared secret.
// Password is the configured app password; when empty, login succeeds
// with any input (local development without a password).
type Sessions struct {
	secret   []byte
	password string
}

// New creates a session manager.
func New(secret, password string) *Sessions {
	return &Sessions{secret: []byte(secret), password: password}
}

// CheckPassword reports whether the presented password grants a session.
func (s *Sessions) CheckPassword(password string) bool {
	if s.password == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
}

// Sign produces "value.hexmac" for the given value.
func (s *Sessions) Sign(value string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(value))
	return value + "." + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signed value and returns the original, or "" when the
// signature does not match.
func (s *Sessions) Verify(signed string) string {
	idx := strings.LastIndex(signed, ".")
	if idx == -1 {
		return ""
	}
	value := signed[:idx]
	if subtle.ConstantTimeCompare([]byte(signed), []byte(s.Sign(value))) != 1 {
		return ""
	}
	return value
}

// Cookie builds a fresh session cookie.
func (s *Sessions) Cookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    s.Sign(sessionValue),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(MaxAge.Seconds()),
	}
}

// ExpiredCookie builds a cookie that clears the session.
func ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}

// Valid reports whether the request carries a valid session cookie.
func (s *Sessions) Valid(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return s.Verify(cookie.Value) == sessionValue
}

// Middleware rejects unauthenticated requests with 401. Paths for which
// skip returns true pass through unchecked.
func (s *Sessions) Middleware(skip func(path string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skip != nil && skip(c.Path()) {
				return next(c)
			}
			if !s.Valid(c.Request()) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			return next(c)
		}
	}
}
