// Package tika provides Apache Tika integration for text extraction.
//
// It turns PDF and DOCX uploads into plain text while keeping line breaks,
// since the analysis pipeline relies on line structure to find sections and
// bullets.
package tika

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/fairyhunter13/cv-feedback/internal/adapter/observability"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
	obsctx "github.com/fairyhunter13/cv-feedback/internal/observability"
	"github.com/fairyhunter13/cv-feedback/pkg/textx"
)

const defaultBaseURL = "http://localhost:9998"

// maxResponseBytes bounds the extracted text read from Tika.
const maxResponseBytes = 8 << 20

// statusError is a non-2xx answer from Tika.
type statusError struct{ code int }

func (e *statusError) Error() string { return fmt.Sprintf("tika status %d", e.code) }

func isClientError(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code >= 400 && se.code < 500
}

// Client is a minimal Apache Tika HTTP client implementing domain.TextExtractor.
// It performs PUT /tika with Accept: text/plain to retrieve extracted text.
// See: https://tika.apache.org/server/ for API details.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *observability.CircuitBreaker

	maxElapsed time.Duration
	initial    time.Duration
	maxBackoff time.Duration
	multiplier float64
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(cb *observability.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// New constructs a Tika client from configuration. Retries, timeouts and the
// circuit breaker follow cfg; in the test environment backoff is shortened.
func New(cfg config.Config, opts ...Option) *Client {
	maxElapsed, initial, maxInterval, mult := cfg.GetTikaBackoffConfig()
	timeout := cfg.TikaTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.TikaURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker:    observability.NewCircuitBreaker("tika", 5, 30*time.Second),
		maxElapsed: maxElapsed,
		initial:    initial,
		maxBackoff: maxInterval,
		multiplier: mult,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) backoffConfig() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()
	expo.MaxElapsedTime = c.maxElapsed
	expo.InitialInterval = c.initial
	expo.MaxInterval = c.maxBackoff
	if c.multiplier > 0 {
		expo.Multiplier = c.multiplier
	}
	return expo
}

// Extract uploads data to the Tika server and returns sanitized multi-line
// text. 5xx answers and transport errors are retried with exponential backoff;
// 4xx answers fail immediately.
func (c *Client) Extract(ctx domain.Context, fileName string, data []byte) (string, error) {
	ctx, span := observability.Tracer().Start(ctx, "tika.Extract")
	defer span.End()
	ext := strings.ToLower(filepath.Ext(fileName))
	span.SetAttributes(
		attribute.String("file.ext", ext),
		attribute.Int("file.size", len(data)),
	)
	lg := obsctx.LoggerFromContext(ctx)

	start := time.Now()
	var body []byte
	attempts := 0
	op := func() error {
		attempts++
		err := c.breaker.Call(func() error {
			var err error
			body, err = c.put(ctx, ext, data)
			return err
		}, isClientError)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, observability.ErrCircuitOpen), isClientError(err), ctx.Err() != nil:
			return backoff.Permanent(err)
		}
		lg.Warn("tika extraction attempt failed", slog.Int("attempt", attempts), slog.Any("error", err))
		return err
	}
	err := backoff.Retry(op, backoff.WithContext(c.backoffConfig(), ctx))
	dur := time.Since(start)
	span.SetAttributes(attribute.Int("tika.attempts", attempts))

	if err != nil {
		status, sentinel := "error", domain.ErrUpstreamFailure
		switch {
		case errors.Is(err, observability.ErrCircuitOpen):
			status = "circuit_open"
		case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
			status, sentinel = "timeout", domain.ErrUpstreamTimeout
		}
		observability.ObserveTika(status, dur)
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		lg.Error("tika extraction failed",
			slog.String("file_ext", ext),
			slog.Int("attempts", attempts),
			slog.Duration("duration", dur),
			slog.Any("error", err))
		return "", fmt.Errorf("op=tika.Extract: %w: %w", sentinel, err)
	}

	observability.ObserveTika("ok", dur)
	text := textx.Normalize(string(body))
	span.SetAttributes(attribute.Int("text.length", len(text)))
	lg.Debug("tika extraction completed",
		slog.String("file_ext", ext),
		slog.Int("attempts", attempts),
		slog.Int("text_length", len(text)),
		slog.Duration("duration", dur))
	return text, nil
}

func (c *Client) put(ctx context.Context, ext string, data []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/plain")
	// Content-Type best-effort from extension
	if ct := contentTypeFromExt(ext); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &statusError{code: resp.StatusCode}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}

// Ping checks that the Tika server answers on /version.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		return fmt.Errorf("op=tika.Ping: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("op=tika.Ping: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("op=tika.Ping: %w", &statusError{code: resp.StatusCode})
	}
	return nil
}

func contentTypeFromExt(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		if ext != "" {
			return mime.TypeByExtension(ext)
		}
	}
	return ""
}
