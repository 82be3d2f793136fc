package usecase

import (
	"context"
	"log/slog"
	"testing"

	"admin-hub/internal/domain"
	"admin-hub/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestLogout(t *testing.T) {
	tests := []struct {
		name        string
		cookies     map[string]string
		resolved    string
		logoutErr   error
		wantCalls   []string
		wantSuccess bool
	}{
		{
			name:        "with session",
			cookies:     map[string]string{session.SessionCookieName: "access", session.RefreshCookieName: "refresh"},
			wantCalls:   []string{"access"},
			wantSuccess: true,
		},
		{
			name:      "backend rejects logout",
			cookies:   map[string]string{session.SessionCookieName: "access"},
			logoutErr: domain.ErrBackendUnavailable,
			wantCalls: []string{"access"},
		},
		{
			name:        "refreshed during the request",
			cookies:     map[string]string{session.SessionCookieName: "stale", session.RefreshCookieName: "refresh"},
			resolved:    "fresh",
			wantCalls:   []string{"fresh"},
			wantSuccess: true,
		},
		{
			name:    "without session",
			cookies: map[string]string{session.RefreshCookieName: "refresh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &mockTokens{logoutErr: tt.logoutErr}
			uc := NewLogout(newManager(&mockIdentity{}, tokens), slog.Default())
			store := newFakeCookies(tt.cookies)

			result := uc.Execute(context.Background(), store, tt.resolved)

			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, tt.wantCalls, tokens.logoutCalls)
			assert.Equal(t, []string{session.SessionCookieName, session.RefreshCookieName}, store.deletes)
		})
	}
}
