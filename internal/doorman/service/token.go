package service

import (
	"errors"
	"time"

	"github.com/doorman-auth/doorman/internal/doorman/domain"
	"github.com/doorman-auth/doorman/pkg/jwtx"
)

// ErrNoSubject reports an issuance attempt for a user without an ID.
var ErrNoSubject = errors.New("issue: user has no subject id")

// TokenService mints and verifies credential pairs. Each purpose has its own
// secret and lifetime; issuance is pure computation with no side effects.
type TokenService struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// IssuePair mints a fresh {access, refresh} pair for the user. Both tokens
// carry the user ID as subject and nothing else. An empty secret surfaces as
// jwtx.ErrNoSecret, which is a fatal configuration error for callers.
func (s *TokenService) IssuePair(u domain.User) (domain.TokenPair, error) {
	if u.ID == "" {
		return domain.TokenPair{}, ErrNoSubject
	}

	now := time.Now().UTC()

	accessSigner, err := jwtx.NewSignerHS256(s.AccessSecret)
	if err != nil {
		return domain.TokenPair{}, err
	}
	access, err := accessSigner.Sign(jwtx.NewClaims(u.ID, jwtx.PurposeAccess, s.AccessTTL, s.Issuer, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refreshSigner, err := jwtx.NewSignerHS256(s.RefreshSecret)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := refreshSigner.Sign(jwtx.NewClaims(u.ID, jwtx.PurposeRefresh, s.RefreshTTL, s.Issuer, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessTTL:    s.AccessTTL,
		RefreshTTL:   s.RefreshTTL,
	}, nil
}

// Ready reports whether both signing secrets are present. Used by the
// readiness probe; issuing with a missing secret would fail anyway.
func (s *TokenService) Ready() bool {
	return len(s.AccessSecret) > 0 && len(s.RefreshSecret) > 0
}

// VerifyAccess validates an access credential and returns its claims.
// jwtx.ErrExpired is the only failure that may start the refresh flow.
func (s *TokenService) VerifyAccess(token string) (jwtx.Claims, error) {
	v, err := jwtx.NewVerifierHS256(s.AccessSecret, s.Issuer, jwtx.PurposeAccess)
	if err != nil {
		return jwtx.Claims{}, err
	}
	return v.Verify(token)
}

// VerifyRefresh validates a refresh credential and returns its claims.
func (s *TokenService) VerifyRefresh(token string) (jwtx.Claims, error) {
	v, err := jwtx.NewVerifierHS256(s.RefreshSecret, s.Issuer, jwtx.PurposeRefresh)
	if err != nil {
		return jwtx.Claims{}, err
	}
	return v.Verify(token)
}
