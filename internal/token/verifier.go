package token

import "time"

// Verifier validates a token's structure, signature, and expiry. It is pure
// and side-effect-free, and it never inspects the token type: one verifier
// serves both access and refresh tokens, and callers that need a specific
// type check Claims.Type themselves.
type Verifier struct {
	codec *Codec
	now   func() time.Time
}

func NewVerifier(codec *Codec) *Verifier {
	return &Verifier{
		codec: codec,
		now:   time.Now,
	}
}

// WithClock overrides the verifier's time source for tests.
func (v *Verifier) WithClock(now func() time.Time) {
	v.now = now
}

// Verify returns the claims of a structurally valid, correctly signed,
// unexpired token, or an error (ErrMalformed, ErrBadSignature, ErrExpired).
// Callers must not log the token body on failure; only the error is safe
// to observe.
func (v *Verifier) Verify(encoded string) (*Claims, error) {
	claims, err := v.codec.Decode(encoded)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil {
		return nil, ErrExpired
	}
	if !v.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}

	return claims, nil
}
