package usecase

import (
	"context"
	"log/slog"

	"admin-hub/internal/session"
)

// Logout invalidates the session on the backend and clears the token cookies.
type Logout struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewLogout creates a new Logout usecase.
func NewLogout(m *session.Manager, l *slog.Logger) *Logout {
	return &Logout{sessions: m, logger: l}
}

// Execute logs out. sessionToken is the token resolved for this request, which
// differs from the cookie when the session was refreshed on the way in; when it
// is empty the session cookie is used. Cookies are cleared whether or not the
// backend accepted the logout; the returned result only reports the backend's
// answer.
func (uc *Logout) Execute(ctx context.Context, store session.CookieStore, sessionToken string) session.LogoutResult {
	if sessionToken == "" {
		sessionToken, _ = uc.sessions.SessionToken(store)
	}

	var result session.LogoutResult
	if sessionToken != "" {
		result = uc.sessions.LogoutFromBackend(ctx, sessionToken)
	}

	uc.sessions.DeleteAllTokenCookies(store)
	return result
}
