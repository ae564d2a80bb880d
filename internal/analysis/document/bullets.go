package document

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/extraction"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// splitBullets finds the bullets on one line. A line starting with a marker
// is a bullet, and every further marker on it starts a merged bullet. On a
// plain line each glyph marker starts a merged bullet; the text before the
// first glyph is not a bullet. When minWords is positive a plain line is
// split only if one of its segments has at least minWords words. markers
// is the number of markers found on a merged line.
func splitBullets(text string, allowPlain bool, minWords int) (segs []extraction.Segment, markers int, merged bool) {
	parts := extraction.SplitMarkers(text)
	if parts[0].Marker != "" {
		return nonEmpty(parts), len(parts), len(parts) > 1
	}
	if !allowPlain || len(parts) < 2 {
		return nil, 0, false
	}
	parts = parts[1:]
	if minWords > 0 && !anyHasWords(parts, minWords) {
		return nil, 0, false
	}
	return nonEmpty(parts), len(parts), true
}

func anyHasWords(segs []extraction.Segment, n int) bool {
	for _, s := range segs {
		if len(strings.Fields(s.Content)) >= n {
			return true
		}
	}
	return false
}

func nonEmpty(segs []extraction.Segment) []extraction.Segment {
	out := make([]extraction.Segment, 0, len(segs))
	for _, s := range segs {
		if s.Content != "" {
			out = append(out, s)
		}
	}
	return out
}

// newBullet derives the semantic flags of one bullet.
func newBullet(l domain.LineEntry, s extraction.Segment) domain.Bullet {
	content := s.Content
	hasMetric := metricRe.MatchString(yearRe.ReplaceAllString(content, " "))
	outcome := outcomeRe.MatchString(content)
	return domain.Bullet{
		Section:                l.Section,
		Region:                 l.Region,
		LineNumber:             l.LineNumber,
		Line:                   content,
		Marker:                 s.Marker,
		WordCount:              len(strings.Fields(content)),
		HasMetric:              hasMetric,
		StartsWithActionVerb:   startsWithActionVerb(content),
		StartsWithResponsible:  weakRe.MatchString(content),
		HasOutcomeLanguage:     outcome,
		HasOutcomeEvidence:     outcome && hasMetric,
		HasScopeLanguage:       scopeRe.MatchString(content),
		HasTrailingPunctuation: trailingPunctuation(content),
	}
}

func startsWithActionVerb(content string) bool {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return false
	}
	w := strings.ToLower(strings.TrimFunc(fields[0], func(r rune) bool { return !unicode.IsLetter(r) }))
	_, ok := actionVerbs[w]
	return ok
}

func trailingPunctuation(content string) bool {
	r, _ := utf8.DecodeLastRuneInString(content)
	return r == '.' || r == ';' || r == '!'
}
