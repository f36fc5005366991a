package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	StorageBackend string
	DatabaseURL    string
	EnableDBCheck  bool
	SQLitePath     string

	JWTSecret string
	JWTIssuer string

	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter format, e.g. "100-M"; empty disables

	GoalWriteMaxRetries int
	GoalRetryBackoff    time.Duration // base wait between conflict retries

	AMQPURL      string // empty disables AMQP publishing
	AMQPExchange string
	WSEnabled    bool

	PosthogAPIKey   string // empty disables analytics capture
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_BACKEND", BackendPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("SQLITE_PATH", "empower_finance.db")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("GOAL_WRITE_MAX_RETRIES", 3)
	v.SetDefault("GOAL_RETRY_BACKOFF", "5ms")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "finance.events")
	v.SetDefault("WS_ENABLED", true)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		StorageBackend:      strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
		DatabaseURL:         v.GetString("PGSQL_URL"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		SQLitePath:          v.GetString("SQLITE_PATH"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:           strings.TrimSpace(v.GetString("RATE_LIMIT")),
		GoalWriteMaxRetries: v.GetInt("GOAL_WRITE_MAX_RETRIES"),
		GoalRetryBackoff:    v.GetDuration("GOAL_RETRY_BACKOFF"),
		AMQPURL:             v.GetString("AMQP_URL"),
		AMQPExchange:        v.GetString("AMQP_EXCHANGE"),
		WSEnabled:           v.GetBool("WS_ENABLED"),
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:     v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v.GetString("LOG_LEVEL"), err)
	}

	switch cfg.StorageBackend {
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_BACKEND is %s", BackendPostgres)
		}
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required when STORAGE_BACKEND is %s", BackendSQLite)
		}
	case BackendMemory:
		log.Println("Warning: STORAGE_BACKEND is memory, data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET is the default insecure key.")
	}

	if cfg.GoalRetryBackoff < 0 {
		return nil, fmt.Errorf("GOAL_RETRY_BACKOFF must not be negative")
	}
	if cfg.GoalWriteMaxRetries < 0 {
		return nil, fmt.Errorf("GOAL_WRITE_MAX_RETRIES must not be negative")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
