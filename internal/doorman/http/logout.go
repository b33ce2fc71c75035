package http

import (
	"net/http"

	"github.com/doorman-auth/doorman/pkg/httpx"
)

// LogoutHandler clears both credential carriers. It deliberately requires no
// authentication: logging out with expired or absent credentials still works.
func LogoutHandler(carrier httpx.CredentialCarrier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		carrier.Clear(w)
		httpx.WriteJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}
