package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Tuning holds the product-tuned constants of the analysis pipeline. The
// defaults are the shipped values; a YAML file may override any subset.
type Tuning struct {
	Categories CategoryTuning   `yaml:"categories" json:"categories"`
	Keywords   KeywordTuning    `yaml:"keywords" json:"keywords"`
	Extraction ExtractionTuning `yaml:"extraction" json:"extraction"`
	Document   DocumentTuning   `yaml:"document" json:"document"`
	Confidence ConfidenceTuning `yaml:"confidence" json:"confidence"`
	Penalty    PenaltyTuning    `yaml:"penalty" json:"penalty"`
	NonCV      NonCVTuning      `yaml:"non_cv" json:"nonCv"`
	Evidence   EvidenceTuning   `yaml:"evidence" json:"evidence"`
}

// CategoryTuning holds the score budget of each category.
type CategoryTuning struct {
	ATS         int `yaml:"ats" json:"ats" validate:"gte=1,lte=100"`
	Structure   int `yaml:"structure" json:"structure" validate:"gte=1,lte=100"`
	Impact      int `yaml:"impact" json:"impact" validate:"gte=1,lte=100"`
	Consistency int `yaml:"consistency" json:"consistency" validate:"gte=1,lte=100"`
	Keywords    int `yaml:"keywords" json:"keywords" validate:"gte=1,lte=100"`
}

// KeywordTuning drives keyword coverage weighting and stuffing detection.
type KeywordTuning struct {
	ExperienceWeight       float64 `yaml:"experience_weight" json:"experienceWeight" validate:"gt=0,lte=1"`
	SkillsOnlyWeight       float64 `yaml:"skills_only_weight" json:"skillsOnlyWeight" validate:"gte=0,ltefield=ExperienceWeight"`
	StuffingMinKeywords    int     `yaml:"stuffing_min_keywords" json:"stuffingMinKeywords" validate:"gte=1"`
	StuffingMaxSkillsChars int     `yaml:"stuffing_max_skills_chars" json:"stuffingMaxSkillsChars" validate:"gte=1"`
	StuffingDensity        float64 `yaml:"stuffing_density" json:"stuffingDensity" validate:"gt=0,lte=1"`
	StuffingMinSkillsOnly  int     `yaml:"stuffing_min_skills_only" json:"stuffingMinSkillsOnly" validate:"gte=0"`
}

// ExtractionTuning holds the coefficients of the extraction quality estimator.
type ExtractionTuning struct {
	MidLineTokenPenalty  float64 `yaml:"mid_line_token_penalty" json:"midLineTokenPenalty" validate:"gte=0"`
	MidLineTokenCap      float64 `yaml:"mid_line_token_cap" json:"midLineTokenCap" validate:"gte=0,lte=1"`
	MergedLinePenalty    float64 `yaml:"merged_line_penalty" json:"mergedLinePenalty" validate:"gte=0"`
	MergedLineCap        float64 `yaml:"merged_line_cap" json:"mergedLineCap" validate:"gte=0,lte=1"`
	VeryLongLineChars    int     `yaml:"very_long_line_chars" json:"veryLongLineChars" validate:"gte=1"`
	LongLineRatioWeight  float64 `yaml:"long_line_ratio_weight" json:"longLineRatioWeight" validate:"gte=0"`
	LongLineCap          float64 `yaml:"long_line_cap" json:"longLineCap" validate:"gte=0,lte=1"`
	ShortLineMaxWords    int     `yaml:"short_line_max_words" json:"shortLineMaxWords" validate:"gte=1"`
	ShortLineRatioWeight float64 `yaml:"short_line_ratio_weight" json:"shortLineRatioWeight" validate:"gte=0"`
	ShortLineCap         float64 `yaml:"short_line_cap" json:"shortLineCap" validate:"gte=0,lte=1"`
	HyphenWrapPenalty    float64 `yaml:"hyphen_wrap_penalty" json:"hyphenWrapPenalty" validate:"gte=0"`
	HyphenWrapCap        float64 `yaml:"hyphen_wrap_cap" json:"hyphenWrapCap" validate:"gte=0,lte=1"`
	HighThreshold        float64 `yaml:"high_threshold" json:"highThreshold" validate:"gt=0,lte=1,gtfield=MediumThreshold"`
	MediumThreshold      float64 `yaml:"medium_threshold" json:"mediumThreshold" validate:"gt=0,lte=1"`
}

// DocumentTuning holds the thresholds of the document context builder.
type DocumentTuning struct {
	HeadingMaxChars       int     `yaml:"heading_max_chars" json:"headingMaxChars" validate:"gte=1"`
	SkillsAliasWindow     int     `yaml:"skills_alias_window" json:"skillsAliasWindow" validate:"gte=1"`
	SummaryAliasWindow    int     `yaml:"summary_alias_window" json:"summaryAliasWindow" validate:"gte=1"`
	SummaryMinWords       int     `yaml:"summary_min_words" json:"summaryMinWords" validate:"gte=1"`
	SummaryMaxWords       int     `yaml:"summary_max_words" json:"summaryMaxWords" validate:"gtfield=SummaryMinWords"`
	SummaryMaxSentences   int     `yaml:"summary_max_sentences" json:"summaryMaxSentences" validate:"gte=1"`
	ContradictionWindow   int     `yaml:"contradiction_window" json:"contradictionWindow" validate:"gte=1"`
	DuplicateMinChars     int     `yaml:"duplicate_min_chars" json:"duplicateMinChars" validate:"gte=1"`
	LongLineChars         int     `yaml:"long_line_chars" json:"longLineChars" validate:"gte=1"`
	CapsHeavyRatio        float64 `yaml:"caps_heavy_ratio" json:"capsHeavyRatio" validate:"gt=0,lte=1"`
	CapsHeavyMinLetters   int     `yaml:"caps_heavy_min_letters" json:"capsHeavyMinLetters" validate:"gte=1"`
	NonCVMaxSignal        int     `yaml:"non_cv_max_signal" json:"nonCvMaxSignal" validate:"gte=0,lte=7"`
	ShortDocumentChars    int     `yaml:"short_document_chars" json:"shortDocumentChars" validate:"gte=1"`
	LongDocumentWords     int     `yaml:"long_document_words" json:"longDocumentWords" validate:"gte=1"`
	MinBulletSample       int     `yaml:"min_bullet_sample" json:"minBulletSample" validate:"gte=1"`
	NumericDensityMin     float64 `yaml:"numeric_density_min" json:"numericDensityMin" validate:"gte=0,lte=1"`
	OutcomeRatioMin       float64 `yaml:"outcome_ratio_min" json:"outcomeRatioMin" validate:"gte=0,lte=1"`
	ActionVerbRatioMin    float64 `yaml:"action_verb_ratio_min" json:"actionVerbRatioMin" validate:"gte=0,lte=1"`
	ResponsibleRatioMax   float64 `yaml:"responsible_ratio_max" json:"responsibleRatioMax" validate:"gte=0,lte=1"`
	KeywordCoverageTarget int     `yaml:"keyword_coverage_target" json:"keywordCoverageTarget" validate:"gte=0,lte=100"`
	// PlainBulletMinWords, when positive, keeps glyphs on plain lines as
	// separators unless a segment has at least this many words.
	PlainBulletMinWords int `yaml:"plain_bullet_min_words" json:"plainBulletMinWords" validate:"gte=0"`
}

// ConfidenceTuning holds the calibration constants for issue confidence.
type ConfidenceTuning struct {
	Critical       float64 `yaml:"critical" json:"critical" validate:"gte=0,lte=1"`
	Warn           float64 `yaml:"warn" json:"warn" validate:"gte=0,lte=1"`
	Info           float64 `yaml:"info" json:"info" validate:"gte=0,lte=1"`
	BaseShare      float64 `yaml:"base_share" json:"baseShare" validate:"gte=0,lte=1"`
	EvidenceShare  float64 `yaml:"evidence_share" json:"evidenceShare" validate:"gte=0,lte=1"`
	HighMultiplier float64 `yaml:"high_multiplier" json:"highMultiplier" validate:"gte=0,lte=1"`
	MedMultiplier  float64 `yaml:"medium_multiplier" json:"mediumMultiplier" validate:"gte=0,lte=1"`
	LowMultiplier  float64 `yaml:"low_multiplier" json:"lowMultiplier" validate:"gte=0,lte=1"`
}

// PenaltyTuning holds the score-impact weights applied under poor extraction.
type PenaltyTuning struct {
	High   float64 `yaml:"high" json:"high" validate:"gte=0,lte=1"`
	Medium float64 `yaml:"medium" json:"medium" validate:"gte=0,lte=1"`
	Low    float64 `yaml:"low" json:"low" validate:"gte=0,lte=1"`
	// KeywordExperienceDependentShare is the part of a keyword-missing delta
	// scaled by extraction quality; the rest is always applied.
	KeywordExperienceDependentShare float64 `yaml:"keyword_experience_dependent_share" json:"keywordExperienceDependentShare" validate:"gte=0,lte=1"`
}

// NonCVTuning caps impact and consistency for documents that do not look like a CV.
type NonCVTuning struct {
	HighImpact        int `yaml:"high_impact" json:"highImpact" validate:"gte=0"`
	HighConsistency   int `yaml:"high_consistency" json:"highConsistency" validate:"gte=0"`
	MediumImpact      int `yaml:"medium_impact" json:"mediumImpact" validate:"gte=0"`
	MediumConsistency int `yaml:"medium_consistency" json:"mediumConsistency" validate:"gte=0"`
	LowImpact         int `yaml:"low_impact" json:"lowImpact" validate:"gte=0"`
	LowConsistency    int `yaml:"low_consistency" json:"lowConsistency" validate:"gte=0"`
}

// EvidenceTuning bounds evidence snippets.
type EvidenceTuning struct {
	MaxSnippetChars int `yaml:"max_snippet_chars" json:"maxSnippetChars" validate:"gte=8"`
	MaxEntries      int `yaml:"max_entries" json:"maxEntries" validate:"gte=1"`
}

// DefaultTuning returns the shipped tuning values.
func DefaultTuning() Tuning {
	return Tuning{
		Categories: CategoryTuning{ATS: 25, Structure: 20, Impact: 25, Consistency: 15, Keywords: 15},
		Keywords: KeywordTuning{
			ExperienceWeight:       1.0,
			SkillsOnlyWeight:       0.4,
			StuffingMinKeywords:    8,
			StuffingMaxSkillsChars: 340,
			StuffingDensity:        0.022,
			StuffingMinSkillsOnly:  0,
		},
		Extraction: ExtractionTuning{
			MidLineTokenPenalty:  0.05,
			MidLineTokenCap:      0.35,
			MergedLinePenalty:    0.08,
			MergedLineCap:        0.35,
			VeryLongLineChars:    180,
			LongLineRatioWeight:  0.9,
			LongLineCap:          0.3,
			ShortLineMaxWords:    2,
			ShortLineRatioWeight: 0.15,
			ShortLineCap:         0.1,
			HyphenWrapPenalty:    0.04,
			HyphenWrapCap:        0.2,
			HighThreshold:        0.75,
			MediumThreshold:      0.5,
		},
		Document: DocumentTuning{
			HeadingMaxChars:       72,
			SkillsAliasWindow:     20,
			SummaryAliasWindow:    12,
			SummaryMinWords:       16,
			SummaryMaxWords:       110,
			SummaryMaxSentences:   4,
			ContradictionWindow:   8,
			DuplicateMinChars:     16,
			LongLineChars:         130,
			CapsHeavyRatio:        0.85,
			CapsHeavyMinLetters:   10,
			NonCVMaxSignal:        2,
			ShortDocumentChars:    900,
			LongDocumentWords:     1400,
			MinBulletSample:       4,
			NumericDensityMin:     0.25,
			OutcomeRatioMin:       0.2,
			ActionVerbRatioMin:    0.4,
			ResponsibleRatioMax:   0.25,
			KeywordCoverageTarget: 60,
		},
		Confidence: ConfidenceTuning{
			Critical:       0.93,
			Warn:           0.82,
			Info:           0.72,
			BaseShare:      0.45,
			EvidenceShare:  0.55,
			HighMultiplier: 1.0,
			MedMultiplier:  0.82,
			LowMultiplier:  0.56,
		},
		Penalty: PenaltyTuning{High: 1.0, Medium: 0.7, Low: 0.4, KeywordExperienceDependentShare: 0.65},
		NonCV: NonCVTuning{
			HighImpact:        6,
			HighConsistency:   4,
			MediumImpact:      8,
			MediumConsistency: 5,
			LowImpact:         10,
			LowConsistency:    6,
		},
		Evidence: EvidenceTuning{MaxSnippetChars: 140, MaxEntries: 3},
	}
}

// Sum returns the overall score budget.
func (c CategoryTuning) Sum() int {
	return c.ATS + c.Structure + c.Impact + c.Consistency + c.Keywords
}

// MaxOverall bounds the sum of the category budgets.
const MaxOverall = 100

// Validate checks tuning values against their struct constraints and keeps
// the overall score within [0, MaxOverall].
func (t Tuning) Validate() error {
	if err := validator.New().Struct(t); err != nil {
		return fmt.Errorf("op=config.Tuning.Validate: %w", err)
	}
	if sum := t.Categories.Sum(); sum > MaxOverall {
		return fmt.Errorf("op=config.Tuning.Validate: category budgets sum to %d, above %d", sum, MaxOverall)
	}
	return nil
}

// LoadTuning returns the default tuning overlaid with the YAML file at path.
// An empty path yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	// #nosec G304 -- Configuration files are expected to be safe
	content, err := os.ReadFile(absPath)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning file: %w", err)
	}
	// Unmarshal onto the defaults so omitted keys keep their shipped value.
	if err := yaml.Unmarshal(content, &t); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// LevelWeight returns the penalty weight for an extraction quality level.
func (p PenaltyTuning) LevelWeight(level string) float64 {
	switch level {
	case "low":
		return p.Low
	case "medium":
		return p.Medium
	default:
		return p.High
	}
}

// LevelMultiplier returns the confidence multiplier for an extraction quality level.
func (c ConfidenceTuning) LevelMultiplier(level string) float64 {
	switch level {
	case "low":
		return c.LowMultiplier
	case "medium":
		return c.MedMultiplier
	default:
		return c.HighMultiplier
	}
}

// Ceilings returns the non-CV impact and consistency ceilings for a level.
func (n NonCVTuning) Ceilings(level string) (impact, consistency int) {
	switch level {
	case "low":
		return n.LowImpact, n.LowConsistency
	case "medium":
		return n.MediumImpact, n.MediumConsistency
	default:
		return n.HighImpact, n.HighConsistency
	}
}
