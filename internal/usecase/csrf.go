package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"admin-hub/internal/domain"
)

// CSRF issues and checks CSRF tokens bound to the current session token.
type CSRF struct {
	csrf   domain.CSRFTokenGenerator
	logger *slog.Logger
}

// NewCSRF creates a new CSRF usecase.
func NewCSRF(g domain.CSRFTokenGenerator, l *slog.Logger) *CSRF {
	return &CSRF{csrf: g, logger: l}
}

// Issue returns the CSRF token for sessionToken.
func (uc *CSRF) Issue(ctx context.Context, sessionToken string) (string, error) {
	if sessionToken == "" {
		return "", domain.ErrSessionNotFound
	}

	token, err := uc.csrf.Generate(sessionToken)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to generate CSRF token", "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrCSRFSecretMissing, err)
	}
	return token, nil
}

// Check verifies token against sessionToken. Requests without a session have
// nothing to protect and pass.
func (uc *CSRF) Check(ctx context.Context, sessionToken, token string) error {
	if sessionToken == "" {
		return nil
	}
	if err := uc.csrf.Verify(sessionToken, token); err != nil {
		uc.logger.WarnContext(ctx, "csrf check failed", "error", err)
		return err
	}
	return nil
}
