package gateway

import (
	"fmt"
	"time"

	"admin-hub/internal/domain"
)

// expiresAtLayouts are the timestamp shapes the backend has been seen to emit.
// Zone-less values are taken as UTC.
var expiresAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// tokenResponse is the wire shape of login and refresh responses.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    string `json:"expires_at"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r tokenResponse) toDomain() (*domain.TokenPair, error) {
	if r.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing access_token", domain.ErrMalformedTokens)
	}

	pair := &domain.TokenPair{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
		ExpiresIn:    r.ExpiresIn,
	}

	if r.ExpiresAt != "" {
		expiresAt, err := parseExpiresAt(r.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedTokens, err)
		}
		pair.ExpiresAt = &expiresAt
	}
	return pair, nil
}

func parseExpiresAt(value string) (time.Time, error) {
	for _, layout := range expiresAtLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized expires_at %q", value)
}
