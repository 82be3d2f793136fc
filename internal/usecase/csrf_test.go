package usecase

import (
	"context"
	"log/slog"
	"testing"

	"admin-hub/internal/domain"
	"admin-hub/internal/infrastructure/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRF_IssueAndCheck(t *testing.T) {
	uc := NewCSRF(token.NewHMACCSRFGenerator("test-secret"), slog.Default())

	issued, err := uc.Issue(context.Background(), "session-1")
	require.NoError(t, err)
	assert.NotEmpty(t, issued)

	assert.NoError(t, uc.Check(context.Background(), "session-1", issued))
	assert.ErrorIs(t, uc.Check(context.Background(), "session-2", issued), domain.ErrCSRFMismatch)
	assert.ErrorIs(t, uc.Check(context.Background(), "session-1", ""), domain.ErrCSRFMismatch)
}

func TestCSRF_IssueWithoutSession(t *testing.T) {
	uc := NewCSRF(token.NewHMACCSRFGenerator("test-secret"), slog.Default())

	_, err := uc.Issue(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestCSRF_MissingSecret(t *testing.T) {
	uc := NewCSRF(token.NewHMACCSRFGenerator(""), slog.Default())

	_, err := uc.Issue(context.Background(), "session-1")

	assert.ErrorIs(t, err, domain.ErrCSRFSecretMissing)
}

func TestCSRF_CheckWithoutSessionPasses(t *testing.T) {
	uc := NewCSRF(token.NewHMACCSRFGenerator("test-secret"), slog.Default())

	assert.NoError(t, uc.Check(context.Background(), "", "anything"))
}
