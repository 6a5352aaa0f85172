// Package token implements the signed token format: a claim set carrying the
// subject identity, encoded as an HMAC-SHA256 signed three-segment structure.
// The codec signs and parses, the issuer mints access/refresh pairs, and the
// verifier checks structure, signature, and expiry. None of them hold global
// state; the signing secret is injected at construction.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
)

// Type distinguishes the two claim sets of a session. A refresh token must
// never authorize a protected operation, and an access token must never be
// accepted by the refresh endpoint; callers enforce this, not the verifier.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

var (
	// ErrMalformed covers anything that fails before signature verification:
	// wrong segment count, bad base64, claims that aren't valid JSON.
	ErrMalformed = errors.New("token malformed")
	// ErrBadSignature means the token parsed but the MAC didn't match.
	ErrBadSignature = errors.New("token bad signature")
	// ErrExpired means the signature checked out but the token is past its
	// expiry (or carries none).
	ErrExpired = errors.New("token expired")
)

// Claims is the payload of a signed token. Immutable once issued; two
// instances exist per authenticated session, independently signed and
// independently expiring.
type Claims struct {
	UserID   string        `json:"uid"`
	Username string        `json:"username"`
	Role     identity.Role `json:"role"`
	Type     Type          `json:"typ"`
	jwt.RegisteredClaims
}

// Identity returns the subject identity embedded in the claims.
func (c *Claims) Identity() identity.Identity {
	return identity.Identity{
		ID:       c.UserID,
		Username: c.Username,
		Role:     c.Role,
	}
}

// Token is an encoded signed token together with its expiry, which the
// transport layer needs for cookie lifetimes.
type Token struct {
	Value     string
	ExpiresAt time.Time
}
