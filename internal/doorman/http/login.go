package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/doorman-auth/doorman/internal/doorman/service"
	"github.com/doorman-auth/doorman/pkg/httpx"
	"github.com/doorman-auth/doorman/pkg/slogx"
)

type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
	Carrier      httpx.CredentialCarrier
}

// ServeHTTP authenticates a user and issues a fresh credential pair through
// the carrier. Unknown email and wrong password get the same answer.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "email and password are required")
		return
	}

	user, err := h.UserService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "invalid_credentials", "invalid email or password")
			return
		}
		log.Error("login failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "something went wrong")
		return
	}

	pair, err := h.TokenService.IssuePair(user)
	if err != nil {
		log.Error("issuing credential pair failed", "err", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "server_error", "something went wrong")
		return
	}

	h.Carrier.WritePair(w, httpx.Credentials{
		Access:     pair.AccessToken,
		Refresh:    pair.RefreshToken,
		AccessTTL:  pair.AccessTTL,
		RefreshTTL: pair.RefreshTTL,
	})

	log.Info("user logged in", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user))
}
