package http

import (
	"errors"
	"net/http"

	"github.com/doorman-auth/doorman/internal/doorman/service"
	"github.com/doorman-auth/doorman/pkg/httpx"
	"github.com/doorman-auth/doorman/pkg/slogx"
)

// SessionMiddleware gates protected routes behind the session guard. The
// carrier extracts both credentials from the request; when the guard rotated
// the pair, the new credentials are attached to the response before the
// wrapped handler runs, so the handler cannot forget them.
func SessionMiddleware(guard *service.SessionGuard, carrier httpx.CredentialCarrier) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			user, pair, err := guard.Authorize(ctx, carrier.ReadAccess(r), carrier.ReadRefresh(r))
			if err != nil {
				switch {
				case errors.Is(err, service.ErrMissingCredential):
					writeError(w, http.StatusUnauthorized, "missing_credential", "no credential presented, please log in")
				case errors.Is(err, service.ErrInvalidCredential):
					writeError(w, http.StatusUnauthorized, "invalid_credential", "credential failed verification")
				case errors.Is(err, service.ErrSessionExpired):
					writeError(w, http.StatusUnauthorized, "session_expired", "session has expired, please log in again")
				case errors.Is(err, service.ErrIdentityGone):
					writeError(w, http.StatusUnauthorized, "identity_gone", "account no longer exists")
				default:
					log.Error("session authorization failed", "err", err)
					writeError(w, http.StatusInternalServerError, "server_error", "something went wrong")
				}
				return
			}

			if pair != nil {
				carrier.WritePair(w, httpx.Credentials{
					Access:     pair.AccessToken,
					Refresh:    pair.RefreshToken,
					AccessTTL:  pair.AccessTTL,
					RefreshTTL: pair.RefreshTTL,
				})
			}

			next.ServeHTTP(w, r.WithContext(withUser(ctx, user)))
		})
	}
}
