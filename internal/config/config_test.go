package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8404, cfg.HTTPPort)
	assert.Equal(t, "sqlite://data/medialit.db", cfg.DatabaseURL)
	assert.Equal(t, "data/medialit.db", cfg.SQLitePath())
	assert.False(t, cfg.IsPostgres())
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/medialit")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("GEMINI_RPS", "0.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.True(t, cfg.IsPostgres())
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 0.5, cfg.GeminiRPS)
}

func TestLoadConfig_InvalidInt(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "eighty")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &Config{
		HTTPPort:       0,
		DatabaseURL:    "mysql://nope",
		DBMaxOpenConns: 1,
		JWTSecret:      "short",
		LogLevel:       "loud",
		LogFormat:      "xml",
		GeminiRPS:      1,
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"HTTP_PORT", "DATABASE_URL", "JWT_SECRET", "LOG_LEVEL", "LOG_FORMAT"} {
		assert.Contains(t, err.Error(), want)
	}
}
