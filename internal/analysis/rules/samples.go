package rules

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/document"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

const sampleSize = 2

// defaultSamples returns the first experience bullets, or the first content
// lines when there are none.
func defaultSamples(c *document.Context) []domain.Evidence {
	if bs := c.ExperienceBullets(); len(bs) > 0 {
		return bulletEvidence(limitBullets(bs, sampleSize), "")
	}
	var out []domain.Evidence
	for _, l := range c.Lines {
		if l.IsHeading {
			continue
		}
		out = append(out, domain.Evidence{Snippet: l.Text, Line: l.LineNumber, Source: "line"})
		if len(out) == sampleSize {
			break
		}
	}
	return out
}

func fire() *Patch { return &Patch{} }

func delta(v float64) *float64 { return &v }

func withEvidence(ev []domain.Evidence) *Patch { return &Patch{Evidence: ev} }

func bulletEvidence(bs []domain.Bullet, reason string) []domain.Evidence {
	out := make([]domain.Evidence, 0, len(bs))
	for _, b := range bs {
		out = append(out, domain.Evidence{Snippet: b.Line, Line: b.LineNumber, Reason: reason, Source: "bullet"})
	}
	return out
}

func lineEvidence(refs []document.LineRef, reason string) []domain.Evidence {
	out := make([]domain.Evidence, 0, len(refs))
	for _, r := range refs {
		out = append(out, domain.Evidence{Snippet: r.Text, Line: r.Line, Reason: reason, Source: "line"})
	}
	return out
}

func headerEvidence(c *document.Context) []domain.Evidence {
	var out []domain.Evidence
	for _, l := range c.Lines {
		if l.Region != domain.RegionHeader {
			break
		}
		out = append(out, domain.Evidence{Snippet: l.Text, Line: l.LineNumber, Reason: "document header", Source: "line"})
		if len(out) == sampleSize {
			break
		}
	}
	return out
}

func summaryEvidence(snippet, details string) []domain.Evidence {
	return []domain.Evidence{{Snippet: snippet, Details: details, Source: "summary"}}
}

func filterBullets(bs []domain.Bullet, pred func(domain.Bullet) bool) []domain.Bullet {
	var out []domain.Bullet
	for _, b := range bs {
		if pred(b) {
			out = append(out, b)
		}
	}
	return out
}

func limitBullets(bs []domain.Bullet, n int) []domain.Bullet {
	if len(bs) > n {
		return bs[:n]
	}
	return bs
}

func limitRefs(refs []document.LineRef, n int) []document.LineRef {
	if len(refs) > n {
		return refs[:n]
	}
	return refs
}

func pct(v float64) string { return fmt.Sprintf("%.0f%%", v*100) }

// listLabels joins up to n labels, noting how many were left out.
func listLabels(labels []string, n int) string {
	if len(labels) <= n {
		return strings.Join(labels, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(labels[:n], ", "), len(labels)-n)
}
