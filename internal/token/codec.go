package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Codec encodes and decodes signed claim sets with a shared HMAC-SHA256
// secret. Decode never panics on untrusted input; it returns ErrMalformed or
// ErrBadSignature so callers can tell "garbage" from "tampered". Expiry is
// not checked here; that is the verifier's job.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Encode serializes the claims and signs them, producing the three-segment
// dot-joined wire form.
func (c *Codec) Encode(claims *Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode checks the token's structure and signature and returns its claims.
// The MAC comparison inside the jwt library is constant-time.
func (c *Codec) Decode(encoded string) (*Claims, error) {
	if !wellFormed(encoded) {
		return nil, ErrMalformed
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(encoded, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformed
		}
	}

	return claims, nil
}

// wellFormed is the cheap reject path: exactly three non-empty segments,
// checked before any cryptographic work.
func wellFormed(encoded string) bool {
	parts := strings.Split(encoded, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}
