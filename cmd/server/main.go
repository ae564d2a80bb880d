// Command server starts the CV feedback HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpserver "github.com/fairyhunter13/cv-feedback/internal/adapter/httpserver"
	"github.com/fairyhunter13/cv-feedback/internal/adapter/observability"
	tikaext "github.com/fairyhunter13/cv-feedback/internal/adapter/textextractor/tika"
	"github.com/fairyhunter13/cv-feedback/internal/app"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/usecase"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, analysis and Tika instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Scoring pipeline: tuning + keyword packs
	analyzer, err := app.BuildAnalyzer(cfg)
	if err != nil {
		slog.Error("analyzer setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Optional Redis for the shared rate limit bucket
	rdb, err := app.NewRedisClient(cfg)
	if err != nil {
		slog.Error("redis config invalid", slog.Any("error", err))
		os.Exit(1)
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		slog.Info("redis rate limiter enabled", slog.Int("per_min", cfg.RateLimitPerMin))
	}
	limiter := app.NewLimiter(cfg, rdb)

	// External text extractor (Apache Tika)
	ext := tikaext.New(cfg)

	redisCheck, tikaCheck := app.BuildReadinessChecks(rdb, ext)

	// HTTP server
	svc := usecase.NewAnalyzeService(analyzer)
	srv := httpserver.NewServer(cfg, svc, ext, analyzer.Registry(), analyzer.Tuning(), redisCheck, tikaCheck)
	handler := app.BuildRouter(cfg, srv, limiter)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port), slog.Bool("admin", cfg.AdminEnabled()))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	if err := srvHTTP.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
