// Package domain holds the value types shared by the analysis pipeline and
// its adapters, plus the error taxonomy and ports.
package domain

// Section is the fine-grained heading category a line belongs to.
type Section string

// Sections recognised by the heading table.
const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
	SectionProjects   Section = "projects"
	SectionSummary    Section = "summary"
	SectionOther      Section = "other"
)

// Region is the coarse bucket used for keyword attribution and
// contradiction search.
type Region string

// Regions a line can be attributed to.
const (
	RegionExperience Region = "experience"
	RegionSkills     Region = "skills"
	RegionHeader     Region = "header"
	RegionOther      Region = "other"
)

// Severity ranks an issue. Lower rank sorts first.
type Severity string

// Issue severities.
const (
	SeverityCritical Severity = "critical"
	SeverityWarn     Severity = "warn"
	SeverityInfo     Severity = "info"
)

// Rank returns the sort rank of the severity (critical=0 < warn=1 < info=2).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarn:
		return 1
	default:
		return 2
	}
}

// Category is one of the five fixed score budgets.
type Category string

// Score categories.
const (
	CategoryATS         Category = "ats"
	CategoryStructure   Category = "structure"
	CategoryImpact      Category = "impact"
	CategoryConsistency Category = "consistency"
	CategoryKeywords    Category = "keywords"
)

// Categories lists the score categories in report order.
var Categories = []Category{CategoryATS, CategoryStructure, CategoryImpact, CategoryConsistency, CategoryKeywords}

// Tier is a keyword importance bucket.
type Tier string

// Keyword tiers.
const (
	TierCritical Tier = "critical"
	TierStrong   Tier = "strong"
	TierNice     Tier = "nice"
)

// QualityLevel is the discrete extraction quality bucket.
type QualityLevel string

// Extraction quality levels.
const (
	QualityHigh   QualityLevel = "high"
	QualityMedium QualityLevel = "medium"
	QualityLow    QualityLevel = "low"
)

// LineEntry is one non-empty line of the normalized document.
type LineEntry struct {
	Rank       int     `json:"rank"`
	LineNumber int     `json:"lineNumber"`
	Text       string  `json:"text"`
	Section    Section `json:"section"`
	Region     Region  `json:"region"`
	BlockKey   string  `json:"blockKey"`
	IsHeading  bool    `json:"isHeading"`
}

// Bullet is a bullet point derived from a line, or from one segment of a
// line holding several merged bullets.
type Bullet struct {
	Section                Section `json:"section"`
	Region                 Region  `json:"region"`
	LineNumber             int     `json:"lineNumber"`
	Line                   string  `json:"line"`
	Marker                 string  `json:"marker"`
	WordCount              int     `json:"wordCount"`
	HasMetric              bool    `json:"hasMetric"`
	StartsWithActionVerb   bool    `json:"startsWithActionVerb"`
	StartsWithResponsible  bool    `json:"startsWithResponsible"`
	HasOutcomeLanguage     bool    `json:"hasOutcomeLanguage"`
	HasOutcomeEvidence     bool    `json:"hasOutcomeEvidence"`
	HasScopeLanguage       bool    `json:"hasScopeLanguage"`
	HasTrailingPunctuation bool    `json:"hasTrailingPunctuation"`
	MergedFromLine         int     `json:"mergedFromLine,omitempty"`
}

// KeywordDefinition describes one role keyword and how to recognise it.
type KeywordDefinition struct {
	Key      string   `json:"key" yaml:"key"`
	Label    string   `json:"label" yaml:"label"`
	Tier     Tier     `json:"tier" yaml:"tier"`
	Patterns []string `json:"patterns" yaml:"patterns"`
	Synonyms []string `json:"synonyms,omitempty" yaml:"synonyms"`
}

// KeywordCoverage is the role keyword coverage of one document.
type KeywordCoverage struct {
	Role                     string            `json:"role"`
	RoleLabel                string            `json:"roleLabel"`
	Total                    int               `json:"total"`
	CriticalTotal            int               `json:"criticalTotal"`
	StrongTotal              int               `json:"strongTotal"`
	Found                    []string          `json:"found"`
	Missing                  []string          `json:"missing"`
	MissingCritical          []string          `json:"missingCritical"`
	MissingStrong            []string          `json:"missingStrong"`
	MissingByTier            map[Tier][]string `json:"missingByTier"`
	SkillsOnly               []string          `json:"skillsOnly"`
	FoundInExperienceCount   int               `json:"foundInExperienceCount"`
	FoundInSkillsCount       int               `json:"foundInSkillsCount"`
	CoveragePct              int               `json:"coveragePct"`
	WeightedCoveragePct      int               `json:"weightedCoveragePct"`
	KeywordStuffingSuspected bool              `json:"keywordStuffingSuspected"`
}

// ExtractionSignals are the raw penalty inputs of the extraction estimator.
type ExtractionSignals struct {
	MidLineBulletTokens int     `json:"midLineBulletTokens"`
	MergedBulletLines   int     `json:"mergedBulletLines"`
	LongLineRatio       float64 `json:"longLineRatio"`
	ShortLineRatio      float64 `json:"shortLineRatio"`
	HyphenWrapPairs     int     `json:"hyphenWrapPairs"`
	LineCount           int     `json:"lineCount"`
}

// ExtractionQuality estimates how reliable the line/bullet structure is.
type ExtractionQuality struct {
	Score   float64           `json:"score"`
	Level   QualityLevel      `json:"level"`
	Signals ExtractionSignals `json:"signals"`
	Notes   []string          `json:"notes"`
}

// Evidence is a bounded, PII-masked excerpt justifying an issue.
type Evidence struct {
	Snippet    string  `json:"snippet"`
	Line       int     `json:"line,omitempty"`
	LineStart  int     `json:"lineStart,omitempty"`
	LineEnd    int     `json:"lineEnd,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Details    string  `json:"details,omitempty"`
	Source     string  `json:"source,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Issue is a fired rule, enriched and calibrated.
type Issue struct {
	ID                string     `json:"id"`
	Severity          Severity   `json:"severity"`
	Category          Category   `json:"category"`
	ScoreDelta        float64    `json:"scoreDelta"`
	AppliedScoreDelta float64    `json:"appliedScoreDelta"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	Explanation       string     `json:"explanation"`
	Why               string     `json:"why"`
	Fix               string     `json:"fix"`
	Evidence          []Evidence `json:"evidence"`
	Confidence        float64    `json:"confidence"`
}

// Scores holds the overall and per-category scores.
type Scores struct {
	Overall     int `json:"overall"`
	ATS         int `json:"ats"`
	Structure   int `json:"structure"`
	Impact      int `json:"impact"`
	Consistency int `json:"consistency"`
	Keywords    int `json:"keywords"`
}

// Get returns the score of one category.
func (s Scores) Get(c Category) int {
	switch c {
	case CategoryATS:
		return s.ATS
	case CategoryStructure:
		return s.Structure
	case CategoryImpact:
		return s.Impact
	case CategoryConsistency:
		return s.Consistency
	case CategoryKeywords:
		return s.Keywords
	}
	return 0
}

// BreakdownItem is one row of the category breakdown.
type BreakdownItem struct {
	ID    Category `json:"id"`
	Label string   `json:"label"`
	Score int      `json:"score"`
	Max   int      `json:"max"`
}

// PenaltyWeights reports the extraction-quality weights used for score impact.
type PenaltyWeights struct {
	High    float64 `json:"high"`
	Medium  float64 `json:"medium"`
	Low     float64 `json:"low"`
	Applied float64 `json:"applied"`
}

// Debug carries diagnostic values alongside the report.
type Debug struct {
	ExtractionQuality               ExtractionQuality `json:"extractionQuality"`
	MissingKeywords                 []string          `json:"missingKeywords"`
	PenaltyWeights                  PenaltyWeights    `json:"penaltyWeights"`
	KeywordExperienceDependentShare float64           `json:"keywordExperienceDependentShare"`
	LikelyNonCV                     bool              `json:"likelyNonCv"`
	CVSignalScore                   int               `json:"cvSignalScore"`
}

// Report is the result of one analysis.
type Report struct {
	Scores          Scores          `json:"scores"`
	Breakdown       []BreakdownItem `json:"breakdown"`
	Issues          []Issue         `json:"issues"`
	KeywordCoverage KeywordCoverage `json:"keywordCoverage"`
	Debug           Debug           `json:"debug"`
}

// HasIssue reports whether an issue with the given id is present.
func (r Report) HasIssue(id string) bool {
	for _, is := range r.Issues {
		if is.ID == id {
			return true
		}
	}
	return false
}
