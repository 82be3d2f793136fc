package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"admin-hub/internal/domain"
	"admin-hub/internal/session"
)

// fakeCookies implements session.CookieStore and records writes.
type fakeCookies struct {
	values  map[string]string
	sets    []*http.Cookie
	deletes []string
}

func newFakeCookies(values map[string]string) *fakeCookies {
	if values == nil {
		values = map[string]string{}
	}
	return &fakeCookies{values: values}
}

func (f *fakeCookies) Get(name string) (string, bool) {
	v, ok := f.values[name]
	return v, ok && v != ""
}

func (f *fakeCookies) Set(cookie *http.Cookie) {
	f.sets = append(f.sets, cookie)
}

func (f *fakeCookies) Delete(cookie *http.Cookie) {
	f.deletes = append(f.deletes, cookie.Name)
}

func (f *fakeCookies) setNames() []string {
	names := make([]string, len(f.sets))
	for i, c := range f.sets {
		names[i] = c.Name
	}
	return names
}

// mockIdentity implements domain.IdentityProvider for testing.
type mockIdentity struct {
	users  map[string]*domain.User
	err    error
	tokens []string
}

func (m *mockIdentity) CurrentUser(_ context.Context, token string) (*domain.User, error) {
	m.tokens = append(m.tokens, token)
	if m.err != nil {
		return nil, m.err
	}
	if user, ok := m.users[token]; ok {
		return user, nil
	}
	return nil, domain.ErrUnauthorized
}

// mockTokens implements domain.TokenService for testing.
type mockTokens struct {
	pair         *domain.TokenPair
	err          error
	logoutErr    error
	refreshCalls []string
	loginCalls   []domain.Credentials
	logoutCalls  []string
}

func (m *mockTokens) RefreshToken(_ context.Context, refreshToken string) (*domain.TokenPair, error) {
	m.refreshCalls = append(m.refreshCalls, refreshToken)
	return m.pair, m.err
}

func (m *mockTokens) AccessToken(_ context.Context, creds domain.Credentials) (*domain.TokenPair, error) {
	m.loginCalls = append(m.loginCalls, creds)
	return m.pair, m.err
}

func (m *mockTokens) Logout(_ context.Context, accessToken string) error {
	m.logoutCalls = append(m.logoutCalls, accessToken)
	return m.logoutErr
}

// mockDirectory implements domain.OrganizationDirectory for testing.
type mockDirectory struct {
	orgs  map[string]domain.Organization
	err   error
	calls int
}

func (m *mockDirectory) PublicOrganization(_ context.Context, shortcode string) (*domain.Organization, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	org, ok := m.orgs[shortcode]
	if !ok {
		return nil, domain.ErrOrganizationNotFound
	}
	return &org, nil
}

// mockOrgCache implements domain.OrganizationCache for testing.
type mockOrgCache struct {
	entries map[string]domain.Organization
}

func newMockOrgCache() *mockOrgCache {
	return &mockOrgCache{entries: make(map[string]domain.Organization)}
}

func (m *mockOrgCache) Get(shortcode string) (*domain.Organization, bool) {
	org, ok := m.entries[shortcode]
	if !ok {
		return nil, false
	}
	return &org, true
}

func (m *mockOrgCache) Set(shortcode string, org domain.Organization) {
	m.entries[shortcode] = org
}

func newManager(identity domain.IdentityProvider, tokens domain.TokenService) *session.Manager {
	return session.NewManager(identity, tokens, session.Options{FallbackTTL: time.Hour}, slog.Default())
}
