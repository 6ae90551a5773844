package app

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer      string // Issuer claim required on admin tokens (default: signup-idp)
	AdminSecret string // Optional: HS256 secret for admin tokens; account admin routes reject every token when unset

	DatabaseFile string // Path to SQLite database file (default: idp.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: pepper)

	CodeTTL           time.Duration // Verification code lifetime (default: 15m)
	CodeMaxAttempts   int           // Wrong guesses allowed per code (default: 5)
	ResendCooldown    time.Duration // Minimum gap between codes for one account (default: 30s)
	PasswordMinLength int           // Minimum password length (default: 8)
	RequireApproval   bool          // Park confirmed accounts until an operator approves them (default: false)
	UnconfirmedTTL    time.Duration // Age at which unconfirmed accounts are removed (default: 7 days)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file from the working directory when one exists.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	return Config{
		Issuer:               getEnvOrDefault("IDP_ISSUER", "signup-idp"),
		AdminSecret:          os.Getenv("IDP_ADMIN_SECRET"),
		DatabaseFile:         getEnvOrDefault("IDP_DATABASE_FILE", "idp.db"),
		PepperFile:           getEnvOrDefault("IDP_PEPPER_FILE", "pepper"),
		CodeTTL:              getEnvDurationOrDefault("IDP_CODE_TTL", 15*time.Minute),
		CodeMaxAttempts:      getEnvIntOrDefault("IDP_CODE_MAX_ATTEMPTS", 5),
		ResendCooldown:       getEnvDurationOrDefault("IDP_RESEND_COOLDOWN", 30*time.Second),
		PasswordMinLength:    getEnvIntOrDefault("IDP_PASSWORD_MIN_LENGTH", 8),
		RequireApproval:      getEnvBoolOrDefault("IDP_REQUIRE_APPROVAL", false),
		UnconfirmedTTL:       getEnvDurationOrDefault("IDP_UNCONFIRMED_TTL", 7*24*time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
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

	if b, err := strconv.ParseBool(value); err == nil {
		return b
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

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
