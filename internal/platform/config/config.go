// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"jobnaut/internal/platform/db"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig
	Database db.Config
	Redis    RedisConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Ingest   IngestConfig

	// EncryptionKey is hashed into the AES-256 key for user PII.
	EncryptionKey string
	// RunMigrations enables GORM AutoMigrate at startup.
	RunMigrations bool
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            string
	Env             string // development or production
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// RedisConfig configures the optional Redis cache backend.
// An empty Host disables Redis and selects the in-memory cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CacheConfig configures entity caches.
type CacheConfig struct {
	TTL time.Duration
}

// AuthConfig configures session token verification.
type AuthConfig struct {
	JWTSecret string
}

// IngestConfig configures the JSearch ingestion pipeline.
type IngestConfig struct {
	APIKey   string
	BaseURL  string
	Queries  []string
	Pages    int
	Schedule string // cron spec, e.g. "@every 6h"; empty disables scheduling
	Timeout  time.Duration
	// RateLimit is the number of JSearch requests allowed per minute.
	RateLimit int
}

// Load reads configuration from the environment, loading .env first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Env:             getEnv("APP_ENV", "development"),
			ShutdownTimeout: getSecondsEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			AllowedOrigins:  getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: db.LoadConfigFromEnv(),
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			TTL: getSecondsEnv("CACHE_TTL_SECONDS", 300*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		},
		Ingest: IngestConfig{
			APIKey:   os.Getenv("JSEARCH_API_KEY"),
			BaseURL:  getEnv("JSEARCH_BASE_URL", "https://jsearch.p.rapidapi.com"),
			Queries:  getSliceEnv("INGEST_QUERIES", []string{"software engineer", "data scientist"}),
			Pages:    getIntEnv("INGEST_PAGES", 1),
			Schedule: os.Getenv("INGEST_SCHEDULE"),
			Timeout:  getSecondsEnv("JSEARCH_TIMEOUT", 30*time.Second),

			RateLimit: getIntEnv("INGEST_RATE_LIMIT", 5),
		},
		EncryptionKey: os.Getenv("ENCRYPTION_KEY"),
		RunMigrations: getEnv("RUN_MIGRATIONS", "true") == "true",
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.IsProduction() {
		if cfg.Auth.JWTSecret == "" {
			return nil, fmt.Errorf("AUTH_JWT_SECRET must be set in production")
		}
		if cfg.EncryptionKey == "" {
			return nil, fmt.Errorf("ENCRYPTION_KEY must be set in production")
		}
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Address returns the Redis host:port.
func (c RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Enabled reports whether a Redis host is configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getSecondsEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

func getSliceEnv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
