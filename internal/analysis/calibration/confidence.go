package calibration

import (
	"math"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/rules"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// BaseConfidence returns the severity-based confidence.
func BaseConfidence(s domain.Severity, t config.ConfidenceTuning) float64 {
	switch s {
	case domain.SeverityCritical:
		return t.Critical
	case domain.SeverityWarn:
		return t.Warn
	default:
		return t.Info
	}
}

// Confidence blends the severity base with the mean confidence of the
// evidence entries that carry one. Extraction-sensitive issues are further
// discounted by the extraction level.
func Confidence(is domain.Issue, level domain.QualityLevel, t config.ConfidenceTuning) float64 {
	c := BaseConfidence(is.Severity, t)
	sum, n := 0.0, 0
	for _, e := range is.Evidence {
		if e.Confidence > 0 {
			sum += e.Confidence
			n++
		}
	}
	if n > 0 {
		c = t.BaseShare*c + t.EvidenceShare*(sum/float64(n))
	}
	if rules.IsExtractionSensitive(is.ID) {
		c *= t.LevelMultiplier(string(level))
	}
	return math.Max(0, math.Min(1, round2(c)))
}

// Calibrate returns a copy of issues with confidence assigned.
func Calibrate(issues []domain.Issue, level domain.QualityLevel, t config.ConfidenceTuning) []domain.Issue {
	out := make([]domain.Issue, len(issues))
	for i, is := range issues {
		is.Confidence = Confidence(is, level, t)
		out[i] = is
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
