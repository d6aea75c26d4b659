package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
)

// Claims is the part of the backend's JWT the client reads for display.
// The signature is never checked here; the backend stays the authority.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// PeekClaims decodes the token payload without verifying it
func PeekClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return claims, nil
}

// Username returns the name to show in "Logged in as", or "" when the token
// does not carry one.
func Username(token string) string {
	claims, err := PeekClaims(token)
	if err != nil {
		return ""
	}
	return claims.Username
}

// Expired reports whether the token's exp claim lies before now. Tokens
// without exp never expire on the client side.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.Before(now)
}
