package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose names the role a token is minted for. A token minted for one
// purpose must never verify under the other purpose's key or verifier.
type Purpose string

const (
	// PurposeAccess is the short-lived credential used on every API call.
	PurposeAccess Purpose = "access"

	// PurposeRefresh is the long-lived credential used only to obtain a
	// fresh pair once the access credential has expired.
	PurposeRefresh Purpose = "refresh"
)

// Default token TTLs. Services can override these via configuration.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims are the claims carried by both credential purposes. The subject is
// the user ID and is the only identity claim in this design.
type Claims struct {
	jwt.RegisteredClaims

	// Purpose the token was minted for ("access" or "refresh"). Checked on
	// verification in addition to the purpose-specific signing secret.
	Purpose Purpose `json:"purpose,omitempty"`
}

// NewClaims builds minimally-correct claims for a token of the given purpose.
func NewClaims(subject string, purpose Purpose, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Purpose: purpose,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. The random
// jti guarantees two tokens minted within the same second still differ.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidatePurpose checks the purpose claim against the expected purpose.
func (c *Claims) ValidatePurpose(expected Purpose) error {
	if c.Purpose != expected {
		return ErrPurpose
	}
	return nil
}

// ValidateExpiryAt checks the token's time window against now. The expiry
// boundary is inclusive: a token inspected at exactly exp is expired.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateExpiry is ValidateExpiryAt against the current UTC time.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryAt(time.Now().UTC())
}
