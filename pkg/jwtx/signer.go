package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret reports a signer or verifier constructed without key material.
// This is a configuration defect and must abort startup, never be swallowed.
var ErrNoSecret = errors.New("jwtx: empty signing secret")

// Signer is our interface for anything that can sign token claims.
type Signer interface {
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens using HMAC-SHA256 with a purpose-specific secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer. The secret must be non-empty.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256Signer{secret: secret}, nil
}

// Sign takes claims and turns them into a signed compact JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
