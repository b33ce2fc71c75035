package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/doorman-auth/doorman/internal/doorman/service"
	"github.com/doorman-auth/doorman/internal/doorman/store"
	"github.com/doorman-auth/doorman/pkg/httpx"
	"github.com/doorman-auth/doorman/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	carrier      httpx.CredentialCarrier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	TokenService *service.TokenService
	UserService  *service.UserService
	SessionGuard *service.SessionGuard
}

func NewRouter(
	carrier httpx.CredentialCarrier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		carrier:      carrier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMe()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{UserService: r.UserService}
	r.Mux.Handle("POST /v1/auth/register", registerHandler)

	loginHandler := &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
		Carrier:      r.carrier,
	}
	r.Mux.Handle("POST /v1/auth/login", loginHandler)

	// Logout clears credentials without requiring a valid session.
	r.Mux.Handle("POST /v1/auth/logout", LogoutHandler(r.carrier))
}

func (r *Router) registerMe() {
	secured := httpx.Chain(&MeHandler{},
		SessionMiddleware(r.SessionGuard, r.carrier),
	)

	r.Mux.Handle("GET /v1/me", secured)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenService))
}
