package domain

import "time"

// TokenPair is the credential set returned by the backend on login and refresh.
// ExpiresAt and ExpiresIn are alternatives; either may be absent.
type TokenPair struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	ExpiresIn    int64      `json:"expires_in,omitempty"`
}

// Credentials are the username/password submitted to the login form.
type Credentials struct {
	Username string `json:"username" form:"username" validate:"required,max=254"`
	Password string `json:"password" form:"password" validate:"required,min=1,max=256"`
}
