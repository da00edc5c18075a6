package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "GIN_MODE", "DATA_DIR", "DATABASE_URL", "MODEL_NAME", "JWT_SECRET",
	"STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET", "FRONTEND_URL", "REDIS_ADDR",
	"REDIS_PASSWORD", "REDIS_DB", "RATE_LIMIT_PER_MIN", "ALLOWED_ORIGINS",
	"RETENTION_DAYS", "REQUEST_TIMEOUT", "MAX_BODY_BYTES", "ENABLE_HSTS", "LOG_LEVEL",
}

// clearEnv unsets every config variable for the test; t.Setenv restores them
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "scoring_model", cfg.ModelName)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
	assert.Equal(t, 90, cfg.RetentionDays)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(64*1024), cfg.MaxBodyBytes)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.True(t, cfg.UsesInsecureSecret())
	assert.False(t, cfg.StripeEnabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"PORT=9090\n"+
			"JWT_SECRET=a-long-enough-test-secret\n"+
			"STRIPE_SECRET_KEY=sk_test_123\n"+
			"FRONTEND_URL=https://calm.example.com/\n"+
			"REDIS_ADDR=localhost:6379\n"+
			"LOG_LEVEL=debug\n"+
			"ALLOWED_ORIGINS= https://calm.example.com , \n",
	), 0o600))

	// the real environment wins over the file
	t.Setenv("RATE_LIMIT_PER_MIN", "5")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5, cfg.RateLimitPerMin)
	assert.Equal(t, "https://calm.example.com", cfg.FrontendURL)
	assert.Equal(t, []string{"https://calm.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.UsesInsecureSecret())
	assert.True(t, cfg.StripeEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"non numeric rate", "RATE_LIMIT_PER_MIN", "many", "RATE_LIMIT_PER_MIN"},
		{"zero rate", "RATE_LIMIT_PER_MIN", "0", "RateLimitPerMin"},
		{"bad timeout", "REQUEST_TIMEOUT", "soon", "REQUEST_TIMEOUT"},
		{"short secret", "JWT_SECRET", "short", "JWTSecret"},
		{"bad stripe key", "STRIPE_SECRET_KEY", "pk_live_x", "StripeSecretKey"},
		{"bad gin mode", "GIN_MODE", "verbose", "GinMode"},
		{"bad redis db", "REDIS_DB", "99", "RedisDB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
