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

type RegisterHandler struct {
	UserService *service.UserService
}

// ServeHTTP creates a new user account.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		req.Password == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "name, email and password are required")
		return
	}

	user, err := h.UserService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUser) {
			writeError(w, http.StatusBadRequest, "duplicate_user", "a user with that name or email already exists")
			return
		}
		log.Error("register failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "something went wrong")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, newUserResponse(user))
}
