// Package app wires application components and startup helpers.
package app

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/cv-feedback/internal/adapter/observability"
	"github.com/fairyhunter13/cv-feedback/internal/analysis"
	"github.com/fairyhunter13/cv-feedback/internal/analysis/keywords"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/service/ratelimiter"
)

// BuildAnalyzer loads the tuning and keyword pack files named by cfg and
// constructs the scoring pipeline. Rule panics are logged and counted.
func BuildAnalyzer(cfg config.Config) (*analysis.Analyzer, error) {
	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return nil, fmt.Errorf("op=app.BuildAnalyzer: %w", err)
	}
	var extra []keywords.Pack
	if cfg.KeywordPacksFile != "" {
		extra, err = keywords.LoadPacks(cfg.KeywordPacksFile)
		if err != nil {
			return nil, fmt.Errorf("op=app.BuildAnalyzer: %w", err)
		}
	}
	reg, err := keywords.NewBuiltinRegistry(cfg.DefaultRole, extra...)
	if err != nil {
		return nil, fmt.Errorf("op=app.BuildAnalyzer: %w", err)
	}
	slog.Info("analyzer configured",
		slog.String("default_role", reg.DefaultRoleID()),
		slog.Int("roles", len(reg.Roles())),
		slog.Bool("custom_tuning", cfg.TuningFile != ""))
	return analysis.New(tuning, reg, analysis.WithPanicHook(func(ruleID string, recovered any) {
		observability.RecordRulePanic(ruleID)
		slog.Error("rule panicked", slog.String("rule", ruleID), slog.Any("recover", recovered))
	})), nil
}

// NewRedisClient parses cfg.RedisURL. It returns nil when Redis is not
// configured.
func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("op=app.NewRedisClient: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewLimiter builds the shared analyze bucket on rdb. It returns a nil
// interface when rdb is nil or rate limiting is disabled.
func NewLimiter(cfg config.Config, rdb *redis.Client) ratelimiter.Limiter {
	if rdb == nil || cfg.RateLimitPerMin <= 0 {
		return nil
	}
	return ratelimiter.NewTokenBucket(rdb, map[string]ratelimiter.BucketConfig{
		AnalyzeBucket: ratelimiter.NewBucketConfigFromPerMinute(cfg.RateLimitPerMin),
	})
}
