package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieStore is the request-scoped cookie jar the Manager reads from and writes to.
type CookieStore interface {
	Get(name string) (string, bool)
	Set(cookie *http.Cookie)
	Delete(cookie *http.Cookie)
}

// EchoCookies adapts an echo.Context to CookieStore. Reads come from the incoming
// request; writes go to the outgoing response.
type EchoCookies struct {
	c echo.Context
}

// NewEchoCookies wraps c.
func NewEchoCookies(c echo.Context) *EchoCookies {
	return &EchoCookies{c: c}
}

// Get returns the value of the named request cookie. Empty values count as absent.
func (s *EchoCookies) Get(name string) (string, bool) {
	cookie, err := s.c.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Set writes cookie to the response.
func (s *EchoCookies) Set(cookie *http.Cookie) {
	s.c.SetCookie(cookie)
}

// Delete expires cookie. Name, path and attributes are kept so the expiry
// matches the cookie that was set.
func (s *EchoCookies) Delete(cookie *http.Cookie) {
	expired := *cookie
	expired.Value = ""
	expired.MaxAge = -1
	expired.Expires = time.Unix(0, 0)
	s.c.SetCookie(&expired)
}
