// Package extraction estimates how reliable the line and bullet structure of
// extracted text is. It has no knowledge of sections or keywords.
package extraction

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// Analyze scores extraction quality from the physical line texts and the
// 1-based line numbers already known to hold merged bullets. Blank lines are
// ignored but keep their place in the numbering.
func Analyze(lines []string, mergedLines []int, t config.ExtractionTuning) domain.ExtractionQuality {
	var sig domain.ExtractionSignals

	merged := make(map[int]struct{}, len(mergedLines))
	for _, n := range mergedLines {
		merged[n] = struct{}{}
	}
	sig.MergedBulletLines = len(merged)

	long, short := 0, 0
	prev := ""
	for i, raw := range lines {
		l := strings.TrimSpace(raw)
		if l == "" {
			continue
		}
		sig.LineCount++
		// Separators in plain lines ("Jakarta • Remote") are not bullet
		// tokens; only bullet lines and known merged lines count.
		_, isMerged := merged[i+1]
		if _, _, ok := LeadingMarker(l); ok || isMerged {
			sig.MidLineBulletTokens += MidLineMarkers(l)
		}
		if utf8.RuneCountInString(l) > t.VeryLongLineChars {
			long++
		}
		if len(strings.Fields(l)) <= t.ShortLineMaxWords {
			short++
		}
		if prev != "" && hyphenWrapped(prev, l) {
			sig.HyphenWrapPairs++
		}
		prev = l
	}
	if n := sig.LineCount; n > 0 {
		sig.LongLineRatio = round3(float64(long) / float64(n))
		sig.ShortLineRatio = round3(float64(short) / float64(n))
	}

	penalty := capped(float64(sig.MidLineBulletTokens)*t.MidLineTokenPenalty, t.MidLineTokenCap) +
		capped(float64(sig.MergedBulletLines)*t.MergedLinePenalty, t.MergedLineCap) +
		capped(sig.LongLineRatio*t.LongLineRatioWeight, t.LongLineCap) +
		capped(sig.ShortLineRatio*t.ShortLineRatioWeight, t.ShortLineCap) +
		capped(float64(sig.HyphenWrapPairs)*t.HyphenWrapPenalty, t.HyphenWrapCap)

	score := round3(math.Max(0, math.Min(1, 1-penalty)))
	return domain.ExtractionQuality{
		Score:   score,
		Level:   Level(score, t),
		Signals: sig,
		Notes:   notes(sig),
	}
}

// Level maps a score onto the discrete quality bucket.
func Level(score float64, t config.ExtractionTuning) domain.QualityLevel {
	switch {
	case score >= t.HighThreshold:
		return domain.QualityHigh
	case score >= t.MediumThreshold:
		return domain.QualityMedium
	default:
		return domain.QualityLow
	}
}

// hyphenWrapped detects "develop-" followed by "ment ..." on the next line.
func hyphenWrapped(cur, next string) bool {
	if !strings.HasSuffix(cur, "-") {
		return false
	}
	before, _ := utf8.DecodeLastRuneInString(strings.TrimSuffix(cur, "-"))
	if !unicode.IsLetter(before) {
		return false
	}
	first, _ := utf8.DecodeRuneInString(next)
	return unicode.IsLower(first)
}

func notes(sig domain.ExtractionSignals) []string {
	out := []string{}
	if sig.MidLineBulletTokens > 0 {
		out = append(out, fmt.Sprintf("%d bullet marker(s) found mid-line", sig.MidLineBulletTokens))
	}
	if sig.MergedBulletLines > 0 {
		out = append(out, fmt.Sprintf("%d line(s) hold several merged bullets", sig.MergedBulletLines))
	}
	if sig.LongLineRatio > 0 {
		out = append(out, fmt.Sprintf("%.0f%% of lines are unusually long", sig.LongLineRatio*100))
	}
	if sig.HyphenWrapPairs > 0 {
		out = append(out, fmt.Sprintf("%d word(s) split across lines by hyphenation", sig.HyphenWrapPairs))
	}
	return out
}

func capped(v, limit float64) float64 { return math.Min(v, limit) }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
