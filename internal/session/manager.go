package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"admin-hub/internal/domain"
)

// Cookie names. These are part of the external contract.
const (
	SessionCookieName      = "session"
	RefreshCookieName      = "refresh_token"
	OrganizationCookieName = "organization"

	cookiePath = "/"
)

// ValidationResult carries the user behind a session token, or nil.
type ValidationResult struct {
	User *domain.User
}

// RefreshResult reports whether a refresh produced a new token pair.
type RefreshResult struct {
	Success bool
	Tokens  *domain.TokenPair
}

// LogoutResult reports whether the backend accepted the logout.
type LogoutResult struct {
	Success bool
}

// Options configures cookie attributes.
type Options struct {
	// Development disables the Secure attribute so cookies work over plain HTTP.
	Development bool
	// FallbackTTL is the session cookie lifetime when neither the backend response
	// nor the access token carries an expiry.
	FallbackTTL time.Duration
}

// Manager owns the session, refresh and organization cookies and the backend calls
// that validate, refresh and invalidate credentials. It keeps no per-user state.
type Manager struct {
	identity domain.IdentityProvider
	tokens   domain.TokenService
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewManager creates a session Manager.
func NewManager(identity domain.IdentityProvider, tokens domain.TokenService, opts Options, logger *slog.Logger) *Manager {
	if opts.FallbackTTL <= 0 {
		opts.FallbackTTL = 15 * time.Minute
	}
	return &Manager{
		identity: identity,
		tokens:   tokens,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// ValidateSessionToken resolves the user behind token. Any failure, including
// transport errors and timeouts, yields a nil user.
func (m *Manager) ValidateSessionToken(ctx context.Context, token string) ValidationResult {
	user, err := m.identity.CurrentUser(ctx, token)
	if err != nil {
		m.logger.DebugContext(ctx, "session token rejected", "error", err)
		return ValidationResult{}
	}
	return ValidationResult{User: user}
}

// RefreshAccessToken exchanges refreshToken for a new pair. Any failure yields
// Success false and nil Tokens.
func (m *Manager) RefreshAccessToken(ctx context.Context, refreshToken string) RefreshResult {
	pair, err := m.tokens.RefreshToken(ctx, refreshToken)
	if err != nil {
		m.logger.InfoContext(ctx, "token refresh failed", "error", err)
		return RefreshResult{}
	}
	return RefreshResult{Success: true, Tokens: pair}
}

// LogoutFromBackend invalidates accessToken on the backend. Success means the
// backend answered 2xx.
func (m *Manager) LogoutFromBackend(ctx context.Context, accessToken string) LogoutResult {
	if err := m.tokens.Logout(ctx, accessToken); err != nil {
		m.logger.WarnContext(ctx, "backend logout failed", "error", err)
		return LogoutResult{}
	}
	return LogoutResult{Success: true}
}

// SessionToken returns the session cookie value.
func (m *Manager) SessionToken(store CookieStore) (string, bool) {
	return store.Get(SessionCookieName)
}

// RefreshToken returns the refresh cookie value.
func (m *Manager) RefreshToken(store CookieStore) (string, bool) {
	return store.Get(RefreshCookieName)
}

// OrganizationShortcode returns the organization cookie value.
func (m *Manager) OrganizationShortcode(store CookieStore) (string, bool) {
	return store.Get(OrganizationCookieName)
}

// SetSessionTokenCookie writes the session cookie expiring at expiresAt.
func (m *Manager) SetSessionTokenCookie(store CookieStore, token string, expiresAt time.Time) {
	cookie := m.cookie(SessionCookieName, token)
	cookie.Expires = expiresAt
	store.Set(cookie)
}

// SetRefreshTokenCookie writes the refresh cookie without an explicit expiry.
func (m *Manager) SetRefreshTokenCookie(store CookieStore, token string) {
	store.Set(m.cookie(RefreshCookieName, token))
}

// DeleteSessionTokenCookie removes the session cookie.
func (m *Manager) DeleteSessionTokenCookie(store CookieStore) {
	store.Delete(m.cookie(SessionCookieName, ""))
}

// DeleteRefreshTokenCookie removes the refresh cookie.
func (m *Manager) DeleteRefreshTokenCookie(store CookieStore) {
	store.Delete(m.cookie(RefreshCookieName, ""))
}

// DeleteAllTokenCookies removes the session and refresh cookies. The organization
// cookie is left alone so the tenant selection survives logout.
func (m *Manager) DeleteAllTokenCookies(store CookieStore) {
	m.DeleteSessionTokenCookie(store)
	m.DeleteRefreshTokenCookie(store)
}

// SetOrganizationCookie writes the organization cookie. An empty shortcode is a
// no-op: the existing cookie is neither replaced nor deleted.
func (m *Manager) SetOrganizationCookie(store CookieStore, shortcode string) {
	if shortcode == "" {
		return
	}
	store.Set(m.cookie(OrganizationCookieName, shortcode))
}

// DeleteOrganizationCookie removes the organization cookie.
func (m *Manager) DeleteOrganizationCookie(store CookieStore) {
	store.Delete(m.cookie(OrganizationCookieName, ""))
}

// IssueTokens writes both token cookies for pair. When pair carries no refresh
// token, the refresh cookie is left as it is.
func (m *Manager) IssueTokens(store CookieStore, pair *domain.TokenPair) {
	m.SetSessionTokenCookie(store, pair.AccessToken, m.sessionExpiry(pair))
	if pair.RefreshToken != "" {
		m.SetRefreshTokenCookie(store, pair.RefreshToken)
	}
}

func (m *Manager) sessionExpiry(pair *domain.TokenPair) time.Time {
	now := m.now()
	switch {
	case pair.ExpiresAt != nil:
		return *pair.ExpiresAt
	case pair.ExpiresIn > 0:
		return now.Add(time.Duration(pair.ExpiresIn) * time.Second)
	}
	if exp, ok := accessTokenExpiry(pair.AccessToken); ok {
		return exp
	}
	return now.Add(m.opts.FallbackTTL)
}

func (m *Manager) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     cookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   !m.opts.Development,
	}
}
