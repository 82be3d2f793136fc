package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"admin-hub/internal/domain"
)

// HMACCSRFGenerator derives CSRF tokens from the session token with HMAC-SHA256.
// Implements domain.CSRFTokenGenerator.
type HMACCSRFGenerator struct {
	secret []byte
}

// NewHMACCSRFGenerator creates a new CSRF token generator.
func NewHMACCSRFGenerator(secret string) *HMACCSRFGenerator {
	return &HMACCSRFGenerator{secret: []byte(secret)}
}

// Generate returns the deterministic token for sessionToken.
func (g *HMACCSRFGenerator) Generate(sessionToken string) (string, error) {
	if len(g.secret) == 0 {
		return "", domain.ErrCSRFSecretMissing
	}
	return base64.RawURLEncoding.EncodeToString(g.sum(sessionToken)), nil
}

// Verify checks token in constant time.
func (g *HMACCSRFGenerator) Verify(sessionToken, token string) error {
	if len(g.secret) == 0 {
		return domain.ErrCSRFSecretMissing
	}
	provided, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || !hmac.Equal(provided, g.sum(sessionToken)) {
		return domain.ErrCSRFMismatch
	}
	return nil
}

func (g *HMACCSRFGenerator) sum(sessionToken string) []byte {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(sessionToken))
	return mac.Sum(nil)
}
