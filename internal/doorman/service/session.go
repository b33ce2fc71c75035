package service

import (
	"context"
	"errors"

	"github.com/doorman-auth/doorman/internal/doorman/domain"
	"github.com/doorman-auth/doorman/internal/doorman/store"
	"github.com/doorman-auth/doorman/pkg/jwtx"
	"github.com/doorman-auth/doorman/pkg/slogx"
)

// Denial reasons produced by the session guard. Each one maps to a 401 with
// a machine-readable reason at the HTTP boundary.
var (
	ErrMissingCredential = errors.New("missing_credential")
	ErrInvalidCredential = errors.New("invalid_credential")
	ErrSessionExpired    = errors.New("session_expired")
	ErrIdentityGone      = errors.New("identity_gone")
)

// SessionGuard authorizes a request from the credentials it presented.
//
// The flow is single-pass: verify the access credential; only on expiry fall
// through to the refresh sub-protocol, which runs at most once and either
// produces a rotated pair or terminates the request. An invalid (as opposed
// to expired) access credential is terminal - a forged token must never be
// laundered through the refresh path.
type SessionGuard struct {
	Tokens *TokenService
	Store  store.Store
}

// Authorize resolves the presented credentials to a user. When authorization
// succeeded via the refresh sub-protocol, the returned pair is non-nil and
// must be re-attached to the response by the transport layer.
func (g *SessionGuard) Authorize(ctx context.Context, access, refresh string) (domain.User, *domain.TokenPair, error) {
	if access == "" {
		return domain.User{}, nil, ErrMissingCredential
	}

	claims, err := g.Tokens.VerifyAccess(access)
	switch {
	case err == nil:
		user, err := g.resolve(ctx, claims.Subject)
		if err != nil {
			return domain.User{}, nil, err
		}
		return user, nil, nil

	case jwtx.IsExpired(err):
		return g.refresh(ctx, refresh)

	default:
		return domain.User{}, nil, ErrInvalidCredential
	}
}

// refresh runs the refresh sub-protocol: validate the refresh credential,
// re-resolve the identity and mint a rotated pair. Any verification failure
// here means the session as a whole is over.
func (g *SessionGuard) refresh(ctx context.Context, refresh string) (domain.User, *domain.TokenPair, error) {
	if refresh == "" {
		return domain.User{}, nil, ErrMissingCredential
	}

	claims, err := g.Tokens.VerifyRefresh(refresh)
	if err != nil {
		return domain.User{}, nil, ErrSessionExpired
	}

	user, err := g.resolve(ctx, claims.Subject)
	if err != nil {
		return domain.User{}, nil, err
	}

	pair, err := g.Tokens.IssuePair(user)
	if err != nil {
		return domain.User{}, nil, err
	}

	slogx.FromContext(ctx).Info("session refreshed", "user_id", user.ID)
	return user, &pair, nil
}

func (g *SessionGuard) resolve(ctx context.Context, subject string) (domain.User, error) {
	user, err := g.Store.Users().GetUserByID(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrIdentityGone
		}
		return domain.User{}, err
	}
	return user, nil
}
