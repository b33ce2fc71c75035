package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/doorman-auth/doorman/pkg/jwtx"
)

type Config struct {
	Issuer        string        // Optional: issuer claim for tokens (default: doorman)
	AccessSecret  string        // Required: HMAC secret for access credentials
	RefreshSecret string        // Required: HMAC secret for refresh credentials
	AccessTTL     time.Duration // Optional: access credential lifetime (default: 15m)
	RefreshTTL    time.Duration // Optional: refresh credential lifetime (default: 30 days)
	CookieSecure  bool          // Optional: set the Secure flag on credential cookies (default: true)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./doorman.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:              getEnvOrDefault("DOORMAN_ISSUER", "doorman"),
		AccessSecret:        os.Getenv("DOORMAN_ACCESS_SECRET"),
		RefreshSecret:       os.Getenv("DOORMAN_REFRESH_SECRET"),
		AccessTTL:           getEnvDurationOrDefault("DOORMAN_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:          getEnvDurationOrDefault("DOORMAN_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		CookieSecure:        getEnvBoolOrDefault("DOORMAN_COOKIE_SECURE", true),
		DatabaseFile:        getEnvOrDefault("DOORMAN_DATABASE_FILE", "doorman.db"),
		PepperFile:          getEnvOrDefault("DOORMAN_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

// Validate rejects configurations the service cannot safely run with. The two
// signing secrets must be present and distinct: a shared secret would let a
// refresh credential pass the access verifier's signature check.
func (cfg Config) Validate() error {
	if cfg.AccessSecret == "" {
		return errors.New("DOORMAN_ACCESS_SECRET is required")
	}
	if cfg.RefreshSecret == "" {
		return errors.New("DOORMAN_REFRESH_SECRET is required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return errors.New("DOORMAN_ACCESS_SECRET and DOORMAN_REFRESH_SECRET must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return errors.New("credential lifetimes must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
