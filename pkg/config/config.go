package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is used when no base URL variable is set
const DefaultBaseURL = "http://localhost:5297"

// Token sources understood by AuthConfig.Source
const (
	TokenSourceEnv   = "env"
	TokenSourceFile  = "file"
	TokenSourceRedis = "redis"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig
	Auth    AuthConfig
	Redis   RedisConfig
	OTEL    OTELConfig
	Log     LogConfig
	FakeAPI FakeAPIConfig
}

// APIConfig holds the dental backend client configuration
type APIConfig struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
}

// AuthConfig holds bearer token configuration
type AuthConfig struct {
	Source    string
	Token     string
	TokenFile string
	RedisKey  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// LogConfig holds logger configuration
type LogConfig struct {
	Env   string
	Level string
}

// FakeAPIConfig holds configuration for the in-memory backend
type FakeAPIConfig struct {
	Addr           string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	FaultRate      float64
	Latency        time.Duration
	Seed           bool
	RateLimit      int // requests per caller per RateWindow; 0 disables
	RateWindow     time.Duration
	RateLimitRedis bool // share counters through Redis
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first; variables already set win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:       firstEnv(DefaultBaseURL, "DENTAL_API_BASE_URL", "API_BASE_URL", "NEXT_PUBLIC_API_BASE_URL"),
			Timeout:       getEnvAsDuration("DENTAL_API_TIMEOUT", 10*time.Second),
			RetryAttempts: getEnvAsInt("DENTAL_API_RETRY_ATTEMPTS", 3),
			RetryDelay:    getEnvAsDuration("DENTAL_API_RETRY_DELAY", time.Second),
			MaxRetryDelay: getEnvAsDuration("DENTAL_API_MAX_RETRY_DELAY", 0),
		},
		Auth: AuthConfig{
			Source:    getEnv("DENTAL_TOKEN_SOURCE", TokenSourceFile),
			Token:     getEnv("DENTAL_ACCESS_TOKEN", ""),
			TokenFile: getEnv("DENTAL_TOKEN_FILE", defaultTokenFile()),
			RedisKey:  getEnv("DENTAL_TOKEN_REDIS_KEY", "dentaldesk:accessToken"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "dentaldesk"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Log: LogConfig{
			Env:   getEnv("APP_ENV", "development"),
			Level: getEnv("LOG_LEVEL", "info"),
		},
		FakeAPI: FakeAPIConfig{
			Addr:           getEnv("FAKE_API_ADDR", ":5297"),
			JWTSecret:      getEnv("FAKE_API_JWT_SECRET", ""),
			TokenTTL:       getEnvAsDuration("FAKE_API_TOKEN_TTL", 8*time.Hour),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
			FaultRate:      getEnvAsFloat("FAKE_API_FAULT_RATE", 0),
			Latency:        getEnvAsDuration("FAKE_API_LATENCY", 0),
			Seed:           getEnvAsBool("FAKE_API_SEED", true),
			RateLimit:      getEnvAsInt("FAKE_API_RATE_LIMIT", 0),
			RateWindow:     getEnvAsDuration("FAKE_API_RATE_WINDOW", time.Minute),
			RateLimitRedis: getEnvAsBool("FAKE_API_RATE_LIMIT_REDIS", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the client unusable
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.RetryAttempts < 0 {
		return fmt.Errorf("api retry attempts must not be negative, got %d", c.API.RetryAttempts)
	}
	if c.FakeAPI.RateLimit > 0 && c.FakeAPI.RateWindow <= 0 {
		return fmt.Errorf("fake api rate window must be positive, got %s", c.FakeAPI.RateWindow)
	}
	if c.FakeAPI.FaultRate < 0 || c.FakeAPI.FaultRate > 1 {
		return fmt.Errorf("fake api fault rate must be within [0, 1], got %v", c.FakeAPI.FaultRate)
	}
	switch c.Auth.Source {
	case TokenSourceEnv, TokenSourceFile, TokenSourceRedis:
	default:
		return fmt.Errorf("unknown token source %q", c.Auth.Source)
	}
	return nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".dentaldesk-token"
	}
	return dir + string(os.PathSeparator) + "dentaldesk" + string(os.PathSeparator) + "token"
}

func firstEnv(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	return firstEnv(defaultValue, key)
}

// parseEnv returns parse(value of key), or def when the variable is unset or malformed
func parseEnv[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func getEnvAsInt(key string, defaultValue int) int {
	return parseEnv(key, defaultValue, strconv.Atoi)
}

func getEnvAsBool(key string, defaultValue bool) bool {
	return parseEnv(key, defaultValue, strconv.ParseBool)
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	return parseEnv(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func getEnvAsList(key string, defaultValue []string) []string {
	return parseEnv(key, defaultValue, splitList)
}

func splitList(raw string) ([]string, error) {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty list %q", raw)
	}
	return items, nil
}

// getEnvAsDuration accepts Go durations ("10s") or plain milliseconds ("10000")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	return parseEnv(key, defaultValue, parseDuration)
}

func parseDuration(raw string) (time.Duration, error) {
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
