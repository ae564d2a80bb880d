package usecase

import (
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fairyhunter13/cv-feedback/internal/adapter/observability"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
	obsctx "github.com/fairyhunter13/cv-feedback/internal/observability"
	"github.com/fairyhunter13/cv-feedback/pkg/textx"
)

// TextSource turns an uploaded document into analysable text. Plain text is
// read directly; other formats go through the extractor.
type TextSource struct {
	Extractor    domain.TextExtractor
	LowTextChars int
}

// Extract returns the document text and how it was obtained. Extraction
// failures are not errors: they yield empty text with status failed so the
// caller can still score it and recommend pasting the text instead.
func (t TextSource) Extract(ctx domain.Context, fileName string, data []byte) (string, domain.ExtractionStatus) {
	text, status := t.extract(ctx, fileName, data)
	observability.RecordExtractionStatus(string(status))
	return text, status
}

func (t TextSource) extract(ctx domain.Context, fileName string, data []byte) (string, domain.ExtractionStatus) {
	lg := obsctx.LoggerFromContext(ctx)
	var text string
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt":
		text = textx.SanitizeText(strings.ToValidUTF8(string(data), ""))
	default:
		if t.Extractor == nil {
			lg.Warn("no text extractor configured", slog.String("file_ext", filepath.Ext(fileName)))
			return "", domain.ExtractionFailed
		}
		out, err := t.Extractor.Extract(ctx, fileName, data)
		if err != nil {
			lg.Warn("text extraction failed; analysing empty text", slog.Any("error", err))
			return "", domain.ExtractionFailed
		}
		text = strings.ToValidUTF8(out, "")
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < t.LowTextChars {
		return text, domain.ExtractionLowText
	}
	return text, domain.ExtractionOK
}
