package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessTokenExpiry reads the exp claim of a JWT access token without verifying
// its signature. The value only sizes the cookie; the backend stays the authority.
func accessTokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
