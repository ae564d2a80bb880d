// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`
	// TikaURL specifies the base URL for the Apache Tika server used for text extraction
	TikaURL         string `env:"TIKA_URL" envDefault:"http://tika:9998"`
	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"cv-feedback"`
	// RedisURL enables the shared token-bucket limiter when set.
	RedisURL          string `env:"REDIS_URL"`
	AdminUsername     string `env:"ADMIN_USERNAME"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	MaxUploadMB       int64  `env:"MAX_UPLOAD_MB" envDefault:"10"`
	// LowTextChars is the extracted length below which extraction is reported as low_text.
	LowTextChars          int           `env:"LOW_TEXT_CHARS" envDefault:"200"`
	DefaultRole           string        `env:"DEFAULT_ROLE" envDefault:"software_engineer"`
	TuningFile            string        `env:"TUNING_FILE"`
	KeywordPacksFile      string        `env:"KEYWORD_PACKS_FILE"`
	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	// Tika Backoff Configuration
	TikaBackoffMaxElapsedTime  time.Duration `env:"TIKA_BACKOFF_MAX_ELAPSED_TIME" envDefault:"20s"`
	TikaBackoffInitialInterval time.Duration `env:"TIKA_BACKOFF_INITIAL_INTERVAL" envDefault:"500ms"`
	TikaBackoffMaxInterval     time.Duration `env:"TIKA_BACKOFF_MAX_INTERVAL" envDefault:"5s"`
	TikaBackoffMultiplier      float64       `env:"TIKA_BACKOFF_MULTIPLIER" envDefault:"1.5"`
	TikaTimeout                time.Duration `env:"TIKA_TIMEOUT" envDefault:"15s"`
}

// AdminEnabled returns true if admin features should be enabled
func (c Config) AdminEnabled() bool {
	return c.AdminUsername != "" && c.AdminPasswordHash != ""
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// GetTikaBackoffConfig returns backoff configuration appropriate for the current environment.
// In test environments, uses much shorter timeouts for faster test execution.
func (c Config) GetTikaBackoffConfig() (maxElapsedTime, initialInterval, maxInterval time.Duration, multiplier float64) {
	if c.IsTest() {
		return 1 * time.Second, 10 * time.Millisecond, 100 * time.Millisecond, 2.0
	}
	return c.TikaBackoffMaxElapsedTime, c.TikaBackoffInitialInterval, c.TikaBackoffMaxInterval, c.TikaBackoffMultiplier
}
