package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/fairyhunter13/cv-feedback/internal/config"
)

// SetupLogger configures a JSON slog logger with environment fields.
func SetupLogger(cfg config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	// In dev, show debug level; in prod, default to info
	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	return NewLogger(w, cfg, level)
}

// NewLogger builds the service logger on w with an explicit minimum level.
func NewLogger(w io.Writer, cfg config.Config, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With(
		slog.String("service", cfg.OTELServiceName),
		slog.String("env", cfg.AppEnv),
	)
}
