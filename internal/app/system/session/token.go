package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the console can read out of an access token without
// verifying it. Signature verification belongs to the API; this is for
// display only (session panel, expiry hints).
type TokenInfo struct {
	Subject   string
	Audience  string
	Scope     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken decodes a JWT's claims without verification.
func InspectToken(raw string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenInfo{}, err
	}

	info := TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if aud, err := claims.GetAudience(); err == nil && len(aud) > 0 {
		info.Audience = aud[0]
	}
	if scope, ok := claims["scope"].(string); ok {
		info.Scope = scope
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// Expired reports whether the token's recorded expiry has passed. A zero
// expiry counts as not expired; the API is the authority either way.
func (t TokenInfo) Expired() bool {
	return !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt)
}
