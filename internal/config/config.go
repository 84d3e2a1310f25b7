package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP
	HTTPHost        string        `env:"HTTP_HOST" default:"127.0.0.1"`
	HTTPPort        int           `env:"HTTP_PORT" default:"8404"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Database (postgres://... or sqlite://path)
	DatabaseURL    string `env:"DATABASE_URL" default:"sqlite://data/medialit.db"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" default:"10"`

	// Authentication (tokens are issued elsewhere, only validated here)
	JWTSecret     string `env:"JWT_SECRET" required:"true"`
	JWTCookieName string `env:"JWT_COOKIE_NAME" default:"jwt_python_flask"`

	// Redis, empty URL disables it
	RedisURL      string `env:"REDIS_URL" default:""`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" default:"86400"`

	// Generative language API
	GeminiAPIKey        string        `env:"GEMINI_API_KEY"`
	GeminiServer        string        `env:"GEMINI_SERVER" default:"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-lite:generateContent"`
	GeminiTimeout       time.Duration `env:"GEMINI_TIMEOUT" default:"30s"`
	GeminiRPS           float64       `env:"GEMINI_RPS" default:"2"`
	AIRequestsPerMinute int           `env:"AI_REQUESTS_PER_MINUTE" default:"20"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"info"`
	LogFormat   string   `env:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:4100,http://127.0.0.1:4100"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional, plain environment variables still work without it
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: could not read .env file: %v\n", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")

	// HTTP
	loadEnvString(&config.HTTPHost, "HTTP_HOST", "127.0.0.1")
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8404); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Database
	loadEnvString(&config.DatabaseURL, "DATABASE_URL", "sqlite://data/medialit.db")
	if err := loadEnvInt(&config.DBMaxOpenConns, "DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}

	// Authentication
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	loadEnvString(&config.JWTCookieName, "JWT_COOKIE_NAME", "jwt_python_flask")

	// Redis
	loadEnvString(&config.RedisURL, "REDIS_URL", "")
	loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", "")
	if err := loadEnvInt(&config.CacheTTL, "CACHE_TTL", 86400); err != nil {
		return nil, err
	}

	// Generative language API
	loadEnvString(&config.GeminiAPIKey, "GEMINI_API_KEY", "")
	loadEnvString(&config.GeminiServer, "GEMINI_SERVER",
		"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-lite:generateContent")
	if err := loadEnvDuration(&config.GeminiTimeout, "GEMINI_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvFloat(&config.GeminiRPS, "GEMINI_RPS", 2); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.AIRequestsPerMinute, "AI_REQUESTS_PER_MINUTE", 20); err != nil {
		return nil, err
	}

	// Development
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")
	loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:4100", "http://127.0.0.1:4100"})

	return config, nil
}

func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) {
	value := os.Getenv(key)
	if value == "" {
		*target = defaultValue
		return
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*target = out
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	if c.DatabaseURL == "" {
		errors = append(errors, "DATABASE_URL must not be empty")
	} else if !c.IsPostgres() && !strings.HasPrefix(c.DatabaseURL, "sqlite://") {
		errors = append(errors, "DATABASE_URL must start with postgres://, postgresql:// or sqlite://")
	}
	if c.DBMaxOpenConns < 1 {
		errors = append(errors, "DB_MAX_OPEN_CONNS must be at least 1")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	// HS256 keys shorter than the hash output weaken the signature
	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}

	if c.GeminiRPS <= 0 {
		errors = append(errors, "GEMINI_RPS must be positive")
	}
	if c.AIRequestsPerMinute < 0 {
		errors = append(errors, "AI_REQUESTS_PER_MINUTE must not be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsPostgres reports whether DATABASE_URL points at a postgres server.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// SQLitePath returns the file path of a sqlite:// DATABASE_URL.
func (c *Config) SQLitePath() string {
	return strings.TrimPrefix(c.DatabaseURL, "sqlite://")
}

// RedisEnabled reports whether a Redis URL was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != ""
}

// GeminiConfigured reports whether an API key for the generative language API is present.
func (c *Config) GeminiConfigured() bool {
	return c.GeminiAPIKey != ""
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
