package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the portal.
type Config struct {
	App          AppConfig
	Backend      BackendConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Session      SessionConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// BackendConfig holds upstream ticketing API values.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SessionConfig defines session token parameters.
type SessionConfig struct {
	JWTSecret              string
	SessionTTLMinutes      int
	OAuthStateTTLMinutes   int
	ChatHistoryTTLMinutes  int
	EscalateRedirectMillis int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backendBase := os.Getenv("BACKEND_API_URL")
	if backendBase == "" {
		return nil, fmt.Errorf("BACKEND_API_URL is required")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "support-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Backend: BackendConfig{
			BaseURL:        backendBase,
			TimeoutSeconds: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			JWTSecret:              getEnv("SESSION_JWT_SECRET", "dev-secret"),
			SessionTTLMinutes:      getEnvAsInt("SESSION_TTL_MINUTES", 480),
			OAuthStateTTLMinutes:   getEnvAsInt("OAUTH_STATE_TTL_MINUTES", 5),
			ChatHistoryTTLMinutes:  getEnvAsInt("CHAT_HISTORY_TTL_MINUTES", 720),
			EscalateRedirectMillis: getEnvAsInt("ESCALATE_REDIRECT_MILLIS", 2000),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the upstream client timeout.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// SessionTTL returns the session token lifetime.
func (s SessionConfig) SessionTTL() time.Duration {
	if s.SessionTTLMinutes <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(s.SessionTTLMinutes) * time.Minute
}

// OAuthStateTTL returns the one-time login state token lifetime.
func (s SessionConfig) OAuthStateTTL() time.Duration {
	if s.OAuthStateTTLMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.OAuthStateTTLMinutes) * time.Minute
}

// ChatHistoryTTL returns how long a cached conversation survives without activity.
func (s SessionConfig) ChatHistoryTTL() time.Duration {
	if s.ChatHistoryTTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(s.ChatHistoryTTLMinutes) * time.Minute
}

// EscalateRedirectDelay returns how long the UI is given to read the
// escalation success notice before being sent back to the ticket list.
func (s SessionConfig) EscalateRedirectDelay() time.Duration {
	if s.EscalateRedirectMillis <= 0 {
		return 2 * time.Second
	}
	return time.Duration(s.EscalateRedirectMillis) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
