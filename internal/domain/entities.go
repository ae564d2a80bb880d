package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrRateLimited      = errors.New("rate limited")
	ErrUpstreamTimeout  = errors.New("upstream timeout")
	ErrUpstreamFailure  = errors.New("upstream failure")
	ErrInternal         = errors.New("internal error")
)

// ExtractionStatus describes how the analysed text was obtained.
type ExtractionStatus string

// Extraction statuses reported by the text extraction layer.
const (
	ExtractionOK        ExtractionStatus = "ok"
	ExtractionFailed    ExtractionStatus = "failed"
	ExtractionLowText   ExtractionStatus = "low_text"
	ExtractionTextInput ExtractionStatus = "text_input"
)

// FallbackRecommended reports whether the caller should suggest pasting
// plain text instead of relying on the extracted document.
func (s ExtractionStatus) FallbackRecommended() bool {
	return s == ExtractionFailed || s == ExtractionLowText
}

// TextExtractor (port)
// Extract converts an uploaded binary document into plain text.
// Implementations may call external services (e.g., Tika).
type TextExtractor interface {
	Extract(ctx Context, fileName string, data []byte) (string, error)
}

// Context is an alias to allow decoupling from std context in domain.
type Context = context.Context
