// Package calibration post-processes fired issues: it makes evidence safe to
// show, assigns confidence and scales score impact by extraction quality.
package calibration

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

const ellipsis = "…"

var (
	emailRe     = regexp.MustCompile(`[^\s@<>()\[\],;:"']+@[\p{L}\p{N}.\-]+\.\p{L}{2,}`)
	phoneRe     = regexp.MustCompile(`\+?\d[\d\s().\-]{5,}\d`)
	yearRangeRe = regexp.MustCompile(`^(?:19|20)\d{2}\s*[-–]\s*(?:19|20)\d{2}$`)
)

// minPhoneDigits is the shortest digit count treated as a phone number.
const minPhoneDigits = 7

// NormalizeEvidence returns a copy of issues whose evidence is PII-masked,
// truncated and capped to the configured number of entries.
func NormalizeEvidence(issues []domain.Issue, t config.EvidenceTuning) []domain.Issue {
	out := make([]domain.Issue, len(issues))
	for i, is := range issues {
		ev := is.Evidence
		if len(ev) > t.MaxEntries {
			ev = ev[:t.MaxEntries]
		}
		clean := make([]domain.Evidence, 0, len(ev))
		for _, e := range ev {
			e.Snippet = Truncate(MaskPII(strings.TrimSpace(e.Snippet)), t.MaxSnippetChars)
			e.Details = MaskPII(e.Details)
			clean = append(clean, e)
		}
		is.Evidence = clean
		out[i] = is
	}
	return out
}

// MaskPII stars the middle of email local parts and all but the last three
// digits of phone-like numbers.
func MaskPII(s string) string {
	s = emailRe.ReplaceAllStringFunc(s, func(m string) string {
		at := strings.LastIndexByte(m, '@')
		return maskLocal(m[:at]) + m[at:]
	})
	return phoneRe.ReplaceAllStringFunc(s, maskPhone)
}

func maskLocal(local string) string {
	r := []rune(local)
	if len(r) <= 2 {
		return string(r[0]) + "*"
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}

func maskPhone(m string) string {
	digits := 0
	for _, r := range m {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < minPhoneDigits || yearRangeRe.MatchString(m) {
		return m
	}
	keep := 3
	var b strings.Builder
	b.Grow(len(m))
	seen := 0
	for _, r := range m {
		if unicode.IsDigit(r) {
			seen++
			if seen <= digits-keep {
				b.WriteByte('*')
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Truncate caps s at max runes, ending with an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimRightFunc(string(r[:max-1]), unicode.IsSpace) + ellipsis
}
