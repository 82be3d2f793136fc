package domain

import "context"

// IdentityProvider resolves the user behind a bearer token.
type IdentityProvider interface {
	CurrentUser(ctx context.Context, accessToken string) (*User, error)
}

// TokenService exchanges credentials or refresh tokens for a new TokenPair.
type TokenService interface {
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	AccessToken(ctx context.Context, creds Credentials) (*TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
}

// OrganizationDirectory looks up public organization metadata.
type OrganizationDirectory interface {
	PublicOrganization(ctx context.Context, shortcode string) (*Organization, error)
}

// OrganizationCache holds organization metadata keyed by shortcode.
type OrganizationCache interface {
	Get(shortcode string) (*Organization, bool)
	Set(shortcode string, org Organization)
}

// CSRFTokenGenerator derives CSRF tokens from a session token.
type CSRFTokenGenerator interface {
	Generate(sessionToken string) (string, error)
	Verify(sessionToken, token string) error
}
