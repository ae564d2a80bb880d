package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvVars unsets every variable Load reads; t.Setenv restores them afterwards.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "PORT", "TIKA_URL", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
		"REDIS_URL", "ADMIN_USERNAME", "ADMIN_PASSWORD_HASH", "MAX_UPLOAD_MB", "LOW_TEXT_CHARS",
		"DEFAULT_ROLE", "TUNING_FILE", "KEYWORD_PACKS_FILE", "CORS_ALLOW_ORIGINS", "RATE_LIMIT_PER_MIN",
		"SERVER_SHUTDOWN_TIMEOUT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
		"TIKA_BACKOFF_MAX_ELAPSED_TIME", "TIKA_BACKOFF_INITIAL_INTERVAL", "TIKA_BACKOFF_MAX_INTERVAL",
		"TIKA_BACKOFF_MULTIPLIER", "TIKA_TIMEOUT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestConfig_Load_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://tika:9998", cfg.TikaURL)
	assert.Equal(t, "cv-feedback", cfg.OTELServiceName)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Equal(t, 200, cfg.LowTextChars)
	assert.Equal(t, "software_engineer", cfg.DefaultRole)
	assert.Equal(t, "*", cfg.CORSAllowOrigins)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
	assert.Equal(t, 30*time.Second, cfg.ServerShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.TikaTimeout)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.TuningFile)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
	assert.False(t, cfg.AdminEnabled())
}

func TestConfig_Load_Custom(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("TIKA_URL", "http://localhost:9998")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("LOW_TEXT_CHARS", "50")
	t.Setenv("DEFAULT_ROLE", "frontend_react")
	t.Setenv("TUNING_FILE", "/etc/cv/tuning.yaml")
	t.Setenv("HTTP_READ_TIMEOUT", "3s")
	t.Setenv("TIKA_BACKOFF_MULTIPLIER", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://localhost:9998", cfg.TikaURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, int64(2), cfg.MaxUploadMB)
	assert.Equal(t, 50, cfg.LowTextChars)
	assert.Equal(t, "frontend_react", cfg.DefaultRole)
	assert.Equal(t, "/etc/cv/tuning.yaml", cfg.TuningFile)
	assert.Equal(t, 3*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, 3.0, cfg.TikaBackoffMultiplier)
}

func TestConfig_Load_ErrorCases(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid port", "PORT", "not-a-number"},
		{"invalid upload limit", "MAX_UPLOAD_MB", "ten"},
		{"invalid low text chars", "LOW_TEXT_CHARS", "1.5"},
		{"invalid duration", "HTTP_READ_TIMEOUT", "soon"},
		{"invalid multiplier", "TIKA_BACKOFF_MULTIPLIER", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "op=config.Load")
		})
	}
}

func TestConfig_AdminEnabled(t *testing.T) {
	assert.False(t, Config{}.AdminEnabled())
	assert.False(t, Config{AdminUsername: "admin"}.AdminEnabled())
	assert.False(t, Config{AdminPasswordHash: "argon2id$..."}.AdminEnabled())
	assert.True(t, Config{AdminUsername: "admin", AdminPasswordHash: "argon2id$..."}.AdminEnabled())
}

func TestConfig_EnvHelpers(t *testing.T) {
	assert.True(t, Config{AppEnv: "DEV"}.IsDev())
	assert.True(t, Config{AppEnv: "Prod"}.IsProd())
	assert.True(t, Config{AppEnv: "test"}.IsTest())
	assert.False(t, Config{AppEnv: "staging"}.IsTest())
}

func TestConfig_GetTikaBackoffConfig(t *testing.T) {
	cfg := Config{
		AppEnv:                     "prod",
		TikaBackoffMaxElapsedTime:  20 * time.Second,
		TikaBackoffInitialInterval: 500 * time.Millisecond,
		TikaBackoffMaxInterval:     5 * time.Second,
		TikaBackoffMultiplier:      1.5,
	}
	maxElapsed, initial, maxInterval, mult := cfg.GetTikaBackoffConfig()
	assert.Equal(t, 20*time.Second, maxElapsed)
	assert.Equal(t, 500*time.Millisecond, initial)
	assert.Equal(t, 5*time.Second, maxInterval)
	assert.Equal(t, 1.5, mult)

	cfg.AppEnv = "test"
	maxElapsed, initial, maxInterval, mult = cfg.GetTikaBackoffConfig()
	assert.Equal(t, time.Second, maxElapsed)
	assert.Equal(t, 10*time.Millisecond, initial)
	assert.Equal(t, 100*time.Millisecond, maxInterval)
	assert.Equal(t, 2.0, mult)
}
