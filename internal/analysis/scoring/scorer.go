// Package scoring turns applied issue deltas into bounded category scores.
package scoring

import (
	"math"

	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

var labels = map[domain.Category]string{
	domain.CategoryATS:         "ATS readiness",
	domain.CategoryStructure:   "Structure",
	domain.CategoryImpact:      "Impact",
	domain.CategoryConsistency: "Consistency",
	domain.CategoryKeywords:    "Keyword coverage",
}

// Input is what the scorer needs from one analysis.
type Input struct {
	Issues      []domain.Issue
	LikelyNonCV bool
	Level       domain.QualityLevel
}

// Scorer applies issue deltas to fixed category budgets.
type Scorer struct {
	max   config.CategoryTuning
	nonCV config.NonCVTuning
}

// New builds a Scorer.
func New(max config.CategoryTuning, nonCV config.NonCVTuning) *Scorer {
	return &Scorer{max: max, nonCV: nonCV}
}

// Max returns the budget of a category.
func (s *Scorer) Max(c domain.Category) int {
	switch c {
	case domain.CategoryATS:
		return s.max.ATS
	case domain.CategoryStructure:
		return s.max.Structure
	case domain.CategoryImpact:
		return s.max.Impact
	case domain.CategoryConsistency:
		return s.max.Consistency
	case domain.CategoryKeywords:
		return s.max.Keywords
	}
	return 0
}

// Score starts every category at its maximum, applies each issue's applied
// delta, rounds and clamps. Likely non-CV documents have impact and
// consistency capped by level-dependent ceilings. Overall is the sum.
func (s *Scorer) Score(in Input) (domain.Scores, []domain.BreakdownItem) {
	raw := make(map[domain.Category]float64, len(domain.Categories))
	for _, c := range domain.Categories {
		raw[c] = float64(s.Max(c))
	}
	for _, is := range in.Issues {
		if _, ok := raw[is.Category]; ok {
			raw[is.Category] += is.AppliedScoreDelta
		}
	}

	final := make(map[domain.Category]int, len(raw))
	for _, c := range domain.Categories {
		final[c] = clamp(int(math.Round(raw[c])), 0, s.Max(c))
	}
	if in.LikelyNonCV {
		impact, consistency := s.nonCV.Ceilings(string(in.Level))
		final[domain.CategoryImpact] = min(final[domain.CategoryImpact], impact)
		final[domain.CategoryConsistency] = min(final[domain.CategoryConsistency], consistency)
	}

	scores := domain.Scores{
		ATS:         final[domain.CategoryATS],
		Structure:   final[domain.CategoryStructure],
		Impact:      final[domain.CategoryImpact],
		Consistency: final[domain.CategoryConsistency],
		Keywords:    final[domain.CategoryKeywords],
	}
	breakdown := make([]domain.BreakdownItem, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		scores.Overall += final[c]
		breakdown = append(breakdown, domain.BreakdownItem{ID: c, Label: labels[c], Score: final[c], Max: s.Max(c)})
	}
	return scores, breakdown
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
