package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// AlgHS256 is the only algorithm this service signs with. The identifier is
// still configuration so a mismatch fails loudly at startup instead of
// silently signing with something unexpected.
const AlgHS256 = "HS256"

// HS256 signs and verifies tokens with a shared symmetric secret. The secret
// is injected once at construction and never read from ambient state.
type HS256 struct {
	secret []byte
	issuer string
}

// NewHS256 builds a combined signer/verifier for the given secret. The
// algorithm identifier must name HS256; anything else is a configuration
// error.
func NewHS256(algorithm string, secret []byte, issuer string) (*HS256, error) {
	if algorithm != AlgHS256 {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrAlgMismatch, algorithm)
	}
	if len(secret) == 0 {
		return nil, errors.New("jwtx: signing secret must not be empty")
	}

	return &HS256{secret: secret, issuer: issuer}, nil
}

func (h *HS256) Alg() string { return AlgHS256 }

// Sign produces a compact serialized token for the claims.
func (h *HS256) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: signing failed: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a compact token. Signature, structure, expiry
// and issuer are all checked; the error identifies which check failed.
func (h *HS256) Verify(raw string) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{AlgHS256}),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenUnverifiable), errors.Is(err, jwt.ErrSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
