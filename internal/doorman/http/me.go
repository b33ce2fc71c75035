package http

import (
	"net/http"

	"github.com/doorman-auth/doorman/pkg/httpx"
)

// MeHandler echoes the authenticated identity. It sits behind the session
// middleware, which already resolved the user.
type MeHandler struct{}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		// Only reachable if the route was wired without the session middleware.
		writeError(w, http.StatusUnauthorized, "missing_credential", "no authenticated identity")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user))
}
