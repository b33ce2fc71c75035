package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token string and gives back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrInvalid      = errors.New("jwtx: invalid token")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrPurpose      = errors.New("jwtx: purpose mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256Verifier validates tokens signed with the purpose-specific HS256
// secret. Every failure except an elapsed time window surfaces as ErrInvalid
// (or one of its claim-specific variants), keeping "expired" distinguishable
// for callers that branch into a refresh flow.
type HS256Verifier struct {
	secret  []byte
	issuer  string
	purpose Purpose

	// now is swapped out in tests to pin the verification instant.
	now func() time.Time
}

// NewVerifierHS256 creates a verifier bound to one purpose and its secret.
func NewVerifierHS256(secret []byte, issuer string, purpose Purpose) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256Verifier{
		secret:  secret,
		issuer:  issuer,
		purpose: purpose,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Verify checks structure and signature, then the claims. Claim checks run in
// a deliberate order: purpose and issuer before expiry, so a token of the
// wrong purpose never reports "expired" and can never trigger a refresh.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(), // time window is validated below, inclusively
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidatePurpose(v.purpose); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryAt(v.now()); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// WithNow returns a copy of the verifier that uses the given clock.
// Intended for tests that need to sit exactly on the expiry boundary.
func (v *HS256Verifier) WithNow(now func() time.Time) *HS256Verifier {
	clone := *v
	clone.now = now
	return &clone
}

// IsExpired reports whether err represents a valid-but-elapsed token, the
// only verification failure that may start the refresh sub-protocol.
func IsExpired(err error) bool {
	return errors.Is(err, ErrExpired)
}
