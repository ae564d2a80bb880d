package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/cv-feedback/internal/domain"
	"github.com/fairyhunter13/cv-feedback/internal/usecase"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(_ domain.Context, _ string, _ []byte) (string, error) {
	return f.text, f.err
}

func TestTextSource_Extract(t *testing.T) {
	long := "Jane Doe, frontend engineer with React and TypeScript"
	tests := []struct {
		name       string
		src        usecase.TextSource
		file       string
		data       string
		wantText   string
		wantStatus domain.ExtractionStatus
	}{
		{"plain text", usecase.TextSource{LowTextChars: 10}, "cv.txt", "  " + long + "\x00 ", long, domain.ExtractionOK},
		{"short text", usecase.TextSource{LowTextChars: 100}, "cv.TXT", long, long, domain.ExtractionLowText},
		{"invalid utf8 dropped", usecase.TextSource{}, "cv.txt", "ab\xffc", "abc", domain.ExtractionOK},
		{"extracted pdf", usecase.TextSource{Extractor: fakeExtractor{text: long}, LowTextChars: 10}, "cv.pdf", "%PDF", long, domain.ExtractionOK},
		{"extractor failure", usecase.TextSource{Extractor: fakeExtractor{err: errors.New("down")}, LowTextChars: 10}, "cv.docx", "PK", "", domain.ExtractionFailed},
		{"no extractor", usecase.TextSource{LowTextChars: 10}, "cv.pdf", "%PDF", "", domain.ExtractionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, status := tt.src.Extract(context.Background(), tt.file, []byte(tt.data))
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus.FallbackRecommended(), status != domain.ExtractionOK)
		})
	}
}
