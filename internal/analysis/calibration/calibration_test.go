package calibration

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

func TestMaskPII(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"email", "contact jane.doe@example.com", "contact j******e@example.com"},
		{"short local", "ab@example.com", "a*@example.com"},
		{"single char local", "x@example.com", "x*@example.com"},
		{"non-ascii local", "jöhnathan@example.com", "j*******n@example.com"},
		{"bracketed", "(jane@example.com)", "(j**e@example.com)"},
		{"phone", "call +1 415 555 0134", "call +* *** *** *134"},
		{"plain digits", "id 1234567", "id ****567"},
		{"year range kept", "Acme 2019 - 2021", "Acme 2019 - 2021"},
		{"short number kept", "team of 12 for 300000 users", "team of 12 for 300000 users"},
		{"no pii", "Built a payments API", "Built a payments API"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskPII(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 140))
	long := strings.Repeat("é", 200)
	got := Truncate(long, 140)
	assert.Equal(t, 140, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestNormalizeEvidence(t *testing.T) {
	tun := config.DefaultTuning().Evidence
	long := "Reach me at jane.doe@example.com or +62 812 3456 7890 " + strings.Repeat("lorem ipsum ", 20)
	issues := []domain.Issue{{
		ID: "x",
		Evidence: []domain.Evidence{
			{Snippet: long, Line: 1},
			{Snippet: "  two  "},
			{Snippet: "three"},
			{Snippet: "four"},
		},
	}}

	out := NormalizeEvidence(issues, tun)
	require.Len(t, out[0].Evidence, 3)
	assert.Len(t, issues[0].Evidence, 4, "input is not mutated")

	digitRun := regexp.MustCompile(`\d{7,}`)
	for _, e := range out[0].Evidence {
		assert.LessOrEqual(t, utf8.RuneCountInString(e.Snippet), 140)
		assert.NotContains(t, e.Snippet, "jane.doe")
		assert.False(t, digitRun.MatchString(strings.ReplaceAll(e.Snippet, " ", "")))
	}
	assert.Equal(t, "two", out[0].Evidence[1].Snippet)
	assert.Equal(t, 1, out[0].Evidence[0].Line)
}

func TestConfidence(t *testing.T) {
	tun := config.DefaultTuning().Confidence

	assert.Equal(t, 0.93, Confidence(domain.Issue{ID: "missing_email", Severity: domain.SeverityCritical}, domain.QualityHigh, tun))
	assert.Equal(t, 0.72, Confidence(domain.Issue{ID: "no_summary", Severity: domain.SeverityInfo}, domain.QualityLow, tun))

	withEv := domain.Issue{
		ID:       "inconsistent_date_format",
		Severity: domain.SeverityWarn,
		Evidence: []domain.Evidence{{Confidence: 0.95}, {Confidence: 0.95}, {}},
	}
	// 0.45*0.82 + 0.55*0.95
	assert.Equal(t, 0.89, Confidence(withEv, domain.QualityHigh, tun))

	sensitive := domain.Issue{ID: "missing_outcome_language", Severity: domain.SeverityWarn}
	high := Confidence(sensitive, domain.QualityHigh, tun)
	med := Confidence(sensitive, domain.QualityMedium, tun)
	low := Confidence(sensitive, domain.QualityLow, tun)
	assert.Equal(t, 0.82, high)
	assert.Equal(t, 0.67, med)
	assert.Equal(t, 0.46, low)
	assert.Greater(t, high, med)
	assert.Greater(t, med, low)

	out := Calibrate([]domain.Issue{sensitive}, domain.QualityLow, tun)
	assert.Equal(t, 0.46, out[0].Confidence)
}

func TestAdjustedDelta(t *testing.T) {
	tun := config.DefaultTuning().Penalty

	email := domain.Issue{ID: "missing_email", ScoreDelta: -8}
	assert.Equal(t, -8.0, AdjustedDelta(email, domain.QualityLow, tun))

	outcome := domain.Issue{ID: "missing_outcome_language", ScoreDelta: -4}
	assert.Equal(t, -4.0, AdjustedDelta(outcome, domain.QualityHigh, tun))
	assert.Equal(t, -2.8, AdjustedDelta(outcome, domain.QualityMedium, tun))
	assert.Equal(t, -1.6, AdjustedDelta(outcome, domain.QualityLow, tun))

	kw := domain.Issue{ID: "missing_role_keywords", ScoreDelta: -6}
	assert.Equal(t, -6.0, AdjustedDelta(kw, domain.QualityHigh, tun))
	// -6*0.35 + -6*0.65*0.4
	assert.Equal(t, -3.66, AdjustedDelta(kw, domain.QualityLow, tun))

	suggestion := domain.Issue{ID: "few_bullets", ScoreDelta: 0}
	assert.Equal(t, 0.0, AdjustedDelta(suggestion, domain.QualityLow, tun))

	out := Adjust([]domain.Issue{kw, email}, domain.QualityMedium, tun)
	assert.Equal(t, -4.83, out[0].AppliedScoreDelta)
	assert.Equal(t, -8.0, out[1].AppliedScoreDelta)
}

func TestAdjustedDelta_NeverGrowsAsQualityDrops(t *testing.T) {
	tun := config.DefaultTuning().Penalty
	for _, id := range []string{"missing_outcome_language", "missing_critical_keywords", "merged_bullets_detected"} {
		is := domain.Issue{ID: id, ScoreDelta: -5}
		high := AdjustedDelta(is, domain.QualityHigh, tun)
		med := AdjustedDelta(is, domain.QualityMedium, tun)
		low := AdjustedDelta(is, domain.QualityLow, tun)
		assert.LessOrEqual(t, -med, -high, id)
		assert.LessOrEqual(t, -low, -med, id)
	}
}

func TestWeights(t *testing.T) {
	tun := config.DefaultTuning().Penalty
	w := Weights(domain.QualityMedium, tun)
	assert.Equal(t, domain.PenaltyWeights{High: 1, Medium: 0.7, Low: 0.4, Applied: 0.7}, w)
	assert.Equal(t, 1.0, Weights(domain.QualityHigh, tun).Applied)
}
