package crm

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is a read-only peek at the backend issued bearer token. The token
// is treated as opaque for authentication purposes; this exists so the shell
// can warn about imminent expiry without a round trip. Claims are parsed
// WITHOUT signature verification and must never be used to authorize.
type TokenInfo struct {
	Subject   string
	Role      string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// InspectToken decodes the claims of token without verifying it. Returns
// false when the token is not a decodable JWT, which is fine: the backend may
// issue tokens in any format it likes.
func InspectToken(token string) (TokenInfo, bool) {
	parser := jwt.NewParser()

	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return TokenInfo{}, false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return TokenInfo{}, false
	}

	info := TokenInfo{}

	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}

	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		info.IssuedAt = &t
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}

	return info, true
}

// Expired reports whether the token carries an expiry in the past. A token
// without a decodable expiry is reported as not expired; the backend has the
// final say either way.
func (t TokenInfo) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(now)
}
