// Package usecase contains application business logic services.
package usecase

import (
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/cv-feedback/internal/adapter/observability"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
	obsctx "github.com/fairyhunter13/cv-feedback/internal/observability"
)

// Sources of analysed text.
const (
	SourceUpload = "upload"
	SourceText   = "text"
)

// DefaultMaxTextBytes bounds pasted or extracted text handed to the pipeline.
const DefaultMaxTextBytes = 512 << 10

// ReportAnalyzer is the scoring pipeline port.
type ReportAnalyzer interface {
	Analyze(text, roleID string) domain.Report
}

// Input is one analysis request.
type Input struct {
	Text   string
	Status domain.ExtractionStatus
	Source string
	Role   string
}

// Meta describes how the analysed text was obtained.
type Meta struct {
	Source              string                  `json:"source"`
	ExtractionStatus    domain.ExtractionStatus `json:"extractionStatus"`
	TextLength          int                     `json:"textLength"`
	FallbackRecommended bool                    `json:"fallbackRecommended"`
	Role                string                  `json:"role"`
}

// Result is the report plus request metadata. The report fields are
// flattened into the JSON object.
type Result struct {
	domain.Report
	Meta Meta `json:"meta"`
}

// AnalyzeService runs the scoring pipeline for one request and records its
// logs, spans and metrics.
type AnalyzeService struct {
	Analyzer     ReportAnalyzer
	MaxTextBytes int
}

// NewAnalyzeService constructs an AnalyzeService.
func NewAnalyzeService(a ReportAnalyzer) AnalyzeService {
	return AnalyzeService{Analyzer: a, MaxTextBytes: DefaultMaxTextBytes}
}

// Analyze validates the input, scores the text and attaches metadata. Empty
// text is valid: a failed extraction is still analysed so the caller gets a
// report alongside the fallback recommendation.
func (s AnalyzeService) Analyze(ctx domain.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("op=usecase.Analyze: %w", err)
	}
	if s.Analyzer == nil {
		return Result{}, fmt.Errorf("op=usecase.Analyze: %w: analyzer not configured", domain.ErrInternal)
	}
	in, err := s.normalizeInput(in)
	if err != nil {
		return Result{}, err
	}

	ctx, span := observability.Tracer().Start(ctx, "usecase.Analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("cv.source", in.Source),
		attribute.String("cv.extraction_status", string(in.Status)),
		attribute.Int("cv.text_length", len(in.Text)),
	)

	start := time.Now()
	report := s.Analyzer.Analyze(in.Text, in.Role)
	dur := time.Since(start)

	role := report.KeywordCoverage.Role
	level := string(report.Debug.ExtractionQuality.Level)
	span.SetAttributes(
		attribute.String("cv.role", role),
		attribute.String("cv.extraction_level", level),
		attribute.Int("cv.score.overall", report.Scores.Overall),
		attribute.Int("cv.issues", len(report.Issues)),
	)
	observability.ObserveAnalysis(role, level, report.Scores.Overall, dur, report.Debug.LikelyNonCV)
	for _, is := range report.Issues {
		observability.ObserveIssue(is.ID, string(is.Severity))
	}

	obsctx.LoggerFromContext(ctx).Info("cv analysis completed",
		slog.String("role", role),
		slog.String("source", in.Source),
		slog.String("extraction_status", string(in.Status)),
		slog.String("extraction_level", level),
		slog.Int("overall", report.Scores.Overall),
		slog.Int("issues", len(report.Issues)),
		slog.Bool("likely_non_cv", report.Debug.LikelyNonCV),
		slog.Duration("duration", dur))

	return Result{
		Report: report,
		Meta: Meta{
			Source:              in.Source,
			ExtractionStatus:    in.Status,
			TextLength:          utf8.RuneCountInString(in.Text),
			FallbackRecommended: in.Status.FallbackRecommended(),
			Role:                role,
		},
	}, nil
}

func (s AnalyzeService) normalizeInput(in Input) (Input, error) {
	switch in.Source {
	case "":
		in.Source = SourceText
	case SourceText, SourceUpload:
	default:
		return Input{}, fmt.Errorf("op=usecase.Analyze: %w: unknown source %q", domain.ErrInvalidArgument, in.Source)
	}
	switch in.Status {
	case "":
		if in.Source == SourceText {
			in.Status = domain.ExtractionTextInput
		} else {
			in.Status = domain.ExtractionOK
		}
	case domain.ExtractionOK, domain.ExtractionFailed, domain.ExtractionLowText, domain.ExtractionTextInput:
	default:
		return Input{}, fmt.Errorf("op=usecase.Analyze: %w: unknown extraction status %q", domain.ErrInvalidArgument, in.Status)
	}
	if in.Source == SourceText && in.Text == "" {
		return Input{}, fmt.Errorf("op=usecase.Analyze: %w: text is required", domain.ErrInvalidArgument)
	}
	if !utf8.ValidString(in.Text) {
		return Input{}, fmt.Errorf("op=usecase.Analyze: %w: text is not valid UTF-8", domain.ErrInvalidArgument)
	}
	if s.MaxTextBytes > 0 && len(in.Text) > s.MaxTextBytes {
		return Input{}, fmt.Errorf("op=usecase.Analyze: %w: text exceeds %d bytes", domain.ErrPayloadTooLarge, s.MaxTextBytes)
	}
	return in, nil
}
