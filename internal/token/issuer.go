package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/khaledsAlshibani/portal-auth/internal/identity"
)

// Issuer mints signed access and refresh tokens for a subject identity.
// Identity fields are embedded verbatim from the caller; the issuer never
// re-derives them. Cookie attachment is the caller's responsibility, which
// keeps signing transport-agnostic.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock overrides the issuer's time source. Tests use this to age
// tokens past their expiry.
func (i *Issuer) WithClock(now func() time.Time) {
	i.now = now
}

// IssueAccess mints a short-lived access token.
func (i *Issuer) IssueAccess(ident identity.Identity) (Token, error) {
	return i.issue(ident, TypeAccess, i.accessTTL)
}

// IssueRefresh mints a long-lived refresh token.
func (i *Issuer) IssueRefresh(ident identity.Identity) (Token, error) {
	return i.issue(ident, TypeRefresh, i.refreshTTL)
}

func (i *Issuer) issue(ident identity.Identity, typ Type, ttl time.Duration) (Token, error) {
	now := i.now()
	expiresAt := now.Add(ttl)

	claims := &Claims{
		UserID:   ident.ID,
		Username: ident.Username,
		Role:     ident.Role,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	encoded, err := i.codec.Encode(claims)
	if err != nil {
		return Token{}, fmt.Errorf("issue %s token: %w", typ, err)
	}

	return Token{Value: encoded, ExpiresAt: expiresAt}, nil
}
