package http

import (
	"net/http"
	"time"

	"github.com/doorman-auth/doorman/internal/doorman/service"
	"github.com/doorman-auth/doorman/internal/doorman/store"
	"github.com/doorman-auth/doorman/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It checks the database connection and
// that both signing secrets are configured, returning 503 when degraded.
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	tokens *service.TokenService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !tokens.Ready() {
			checks.Signer = "error: missing signing secret"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
