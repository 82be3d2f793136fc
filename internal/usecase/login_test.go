package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"admin-hub/internal/domain"
	"admin-hub/internal/session"
	"admin-hub/utils/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	tokens := &mockTokens{pair: &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 600}}
	uc := NewLogin(tokens, newManager(&mockIdentity{}, tokens), validator.New(), slog.Default())
	store := newFakeCookies(nil)

	err := uc.Execute(context.Background(), store, domain.Credentials{Username: "admin@example.com", Password: "secret"})

	require.NoError(t, err)
	require.Len(t, tokens.loginCalls, 1)
	assert.Equal(t, "admin@example.com", tokens.loginCalls[0].Username)
	assert.Equal(t, []string{session.SessionCookieName, session.RefreshCookieName}, store.setNames())
	assert.Empty(t, store.deletes)
}

func TestLogin_ValidationError(t *testing.T) {
	tokens := &mockTokens{}
	uc := NewLogin(tokens, newManager(&mockIdentity{}, tokens), validator.New(), slog.Default())
	store := newFakeCookies(nil)

	err := uc.Execute(context.Background(), store, domain.Credentials{Username: "", Password: ""})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var verr *validator.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Empty(t, tokens.loginCalls, "backend is not called with invalid input")
	assert.Empty(t, store.sets)
}

func TestLogin_BadCredentials(t *testing.T) {
	tokens := &mockTokens{err: domain.ErrInvalidCredentials}
	uc := NewLogin(tokens, newManager(&mockIdentity{}, tokens), validator.New(), slog.Default())
	store := newFakeCookies(nil)

	err := uc.Execute(context.Background(), store, domain.Credentials{Username: "admin", Password: "wrong"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, store.sets)
}
