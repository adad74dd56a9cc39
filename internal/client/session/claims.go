package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the prompt shows about the current token.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token's exp is in the past relative to now.
// A token without exp never expires from the console's point of view.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims reads subject and expiry from a JWT without verifying its
// signature; the server remains the only judge of validity. Opaque tokens
// report ok=false.
func ParseClaims(token string) (TokenClaims, bool) {
	if token == "" {
		return TokenClaims{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, false
	}

	var out TokenClaims
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, true
}

// Claims decodes the current token.
func (s *Store) Claims() (TokenClaims, bool) {
	return ParseClaims(s.Token())
}
