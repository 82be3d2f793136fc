package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"admin-hub/internal/domain"
	"admin-hub/internal/session"
	"admin-hub/utils/validator"
)

// Login exchanges credentials for tokens and writes the token cookies.
type Login struct {
	tokens    domain.TokenService
	sessions  *session.Manager
	validator *validator.Validator
	logger    *slog.Logger
}

// NewLogin creates a new Login usecase.
func NewLogin(t domain.TokenService, m *session.Manager, v *validator.Validator, l *slog.Logger) *Login {
	return &Login{tokens: t, sessions: m, validator: v, logger: l}
}

// Execute validates creds, authenticates against the backend and issues cookies.
// Validation failures wrap domain.ErrInvalidInput around a *validator.ValidationError.
func (uc *Login) Execute(ctx context.Context, store session.CookieStore, creds domain.Credentials) error {
	if err := uc.validator.Validate(creds); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	pair, err := uc.tokens.AccessToken(ctx, creds)
	if err != nil {
		uc.logger.InfoContext(ctx, "login rejected", "error", err)
		return err
	}

	uc.sessions.IssueTokens(store, pair)
	return nil
}
