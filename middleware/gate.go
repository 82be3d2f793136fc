package middleware

import (
	"strings"

	"admin-hub/internal/domain"
	"admin-hub/internal/session"
	"admin-hub/internal/usecase"
	"admin-hub/utils/logger"

	"github.com/labstack/echo/v4"
)

const (
	userContextKey         = "admin_hub.user"
	sessionTokenContextKey = "admin_hub.session_token"
)

// Gate resolves the current user for every request and redirects when the
// request must not proceed. Requests under protectedPrefix require a user.
func Gate(uc *usecase.ResolveSession, protectedPrefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			protected := IsProtectedPath(req.URL.Path, protectedPrefix)

			out := uc.Execute(req.Context(), session.NewEchoCookies(c), protected)
			if out.Kind == usecase.OutcomeRedirect {
				return c.Redirect(out.Status, out.Location)
			}

			if out.User != nil {
				c.Set(userContextKey, out.User)
				c.Set(sessionTokenContextKey, out.SessionToken)
				c.SetRequest(req.WithContext(logger.WithUserID(req.Context(), out.User.ID.String())))
			}
			return next(c)
		}
	}
}

// IsProtectedPath reports whether path is prefix itself or lies below it.
func IsProtectedPath(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// UserFrom returns the user attached by Gate, or nil for anonymous requests.
func UserFrom(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// SessionTokenFrom returns the access token the user was resolved with. After a
// refresh this is the new token, not the one the browser sent.
func SessionTokenFrom(c echo.Context) string {
	token, _ := c.Get(sessionTokenContextKey).(string)
	return token
}
