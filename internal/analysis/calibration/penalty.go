package calibration

import (
	"github.com/fairyhunter13/cv-feedback/internal/analysis/rules"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// Weights reports the penalty weights and the one applied at level.
func Weights(level domain.QualityLevel, t config.PenaltyTuning) domain.PenaltyWeights {
	return domain.PenaltyWeights{
		High:    t.High,
		Medium:  t.Medium,
		Low:     t.Low,
		Applied: appliedWeight(level, t),
	}
}

func appliedWeight(level domain.QualityLevel, t config.PenaltyTuning) float64 {
	if level == domain.QualityHigh {
		return 1
	}
	return t.LevelWeight(string(level))
}

// AdjustedDelta scales the score impact of a negative extraction-sensitive
// issue by the extraction weight. Keyword-missing issues always keep the
// experience-independent part of their delta.
func AdjustedDelta(is domain.Issue, level domain.QualityLevel, t config.PenaltyTuning) float64 {
	d := is.ScoreDelta
	if d >= 0 || !rules.IsExtractionSensitive(is.ID) {
		return d
	}
	w := appliedWeight(level, t)
	if rules.IsKeywordMissing(is.ID) {
		share := t.KeywordExperienceDependentShare
		return round2(d*(1-share) + d*share*w)
	}
	return round2(d * w)
}

// Adjust returns a copy of issues with AppliedScoreDelta set.
func Adjust(issues []domain.Issue, level domain.QualityLevel, t config.PenaltyTuning) []domain.Issue {
	out := make([]domain.Issue, len(issues))
	for i, is := range issues {
		is.AppliedScoreDelta = AdjustedDelta(is, level, t)
		out[i] = is
	}
	return out
}
