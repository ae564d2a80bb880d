// Package document builds the read-only DocumentContext the rule engine
// evaluates: classified lines, bullets with semantic flags, section presence,
// contact flags, date formats, stack contradictions, keyword coverage and
// extraction quality.
package document

import (
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// SectionPresence distinguishes a real heading from an inferred section.
type SectionPresence struct {
	Explicit bool `json:"explicit"`
	Inferred bool `json:"inferred"`
}

// Present reports whether the section exists in either form.
func (p SectionPresence) Present() bool { return p.Explicit || p.Inferred }

// HeadingSuggestion points at content that reads like a section but has no heading.
type HeadingSuggestion struct {
	Section domain.Section `json:"section"`
	Line    int            `json:"line"`
	Text    string         `json:"text"`
}

// Contact holds the contact-information flags of the whole text.
type Contact struct {
	HasEmail    bool `json:"hasEmail"`
	HasPhone    bool `json:"hasPhone"`
	HasLinkedIn bool `json:"hasLinkedIn"`
}

// DateEvidence is one date occurrence.
type DateEvidence struct {
	Format DateFormat `json:"format"`
	Line   int        `json:"line"`
	Match  string     `json:"match"`
	Text   string     `json:"text"`
}

// DateFormats is the date-format usage of the document.
type DateFormats struct {
	UsedFormats []DateFormat       `json:"usedFormats"`
	Counts      map[DateFormat]int `json:"counts"`
	Evidence    []DateEvidence     `json:"evidence"`
}

// Has reports whether format was used.
func (d DateFormats) Has(format DateFormat) bool { return d.Counts[format] > 0 }

// MergedBullet records a physical line holding several bullets.
type MergedBullet struct {
	Line    int    `json:"line"`
	Text    string `json:"text"`
	Markers int    `json:"markers"`
}

// Contradiction is a conflicting stack mention inside one experience block.
type Contradiction struct {
	Rule      string `json:"rule"`
	Block     string `json:"block"`
	LineStart int    `json:"lineStart"`
	LineEnd   int    `json:"lineEnd"`
	Text      string `json:"text"`
}

// LineRef points at a line by number and text.
type LineRef struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// Context is the aggregate read by every rule. It is built once per analysis
// and must not be modified afterwards.
type Context struct {
	Text      string `json:"-"`
	Role      string `json:"role"`
	CharCount int    `json:"charCount"`
	WordCount int    `json:"wordCount"`

	Lines   []domain.LineEntry `json:"lines"`
	Bullets []domain.Bullet    `json:"bullets"`

	Sections           map[domain.Section]SectionPresence `json:"sections"`
	HeadingSuggestions []HeadingSuggestion                `json:"headingSuggestions"`
	Contact            Contact                            `json:"contact"`
	DateFormats        DateFormats                        `json:"dateFormats"`
	MergedBullets      []MergedBullet                     `json:"mergedBullets"`
	Contradictions     []Contradiction                    `json:"contradictions"`

	DuplicateLines []LineRef `json:"duplicateLines"`
	LongLines      []LineRef `json:"longLines"`
	CapsHeavyLines []LineRef `json:"capsHeavyLines"`
	TableLines     []LineRef `json:"tableLines"`
	PronounLines   []LineRef `json:"pronounLines"`

	CVSignalScore int  `json:"cvSignalScore"`
	LikelyNonCV   bool `json:"likelyNonCv"`

	KeywordCoverage   domain.KeywordCoverage   `json:"keywordCoverage"`
	ExtractionQuality domain.ExtractionQuality `json:"extractionQuality"`

	Tuning config.Tuning `json:"-"`
}

// Has reports whether the section is present, explicitly or inferred.
func (c *Context) Has(section domain.Section) bool { return c.Sections[section].Present() }

// HasExplicit reports whether the section has a real heading.
func (c *Context) HasExplicit(section domain.Section) bool { return c.Sections[section].Explicit }

// SectionCount counts the named sections present (other excluded).
func (c *Context) SectionCount() int {
	n := 0
	for s, p := range c.Sections {
		if s != domain.SectionOther && p.Present() {
			n++
		}
	}
	return n
}

// ExperienceBullets returns bullets attributed to the experience region.
func (c *Context) ExperienceBullets() []domain.Bullet {
	var out []domain.Bullet
	for _, b := range c.Bullets {
		if b.Region == domain.RegionExperience {
			out = append(out, b)
		}
	}
	return out
}

// BulletSample is the bullet set used for impact ratios: experience bullets
// when there are any, otherwise every bullet.
func (c *Context) BulletSample() []domain.Bullet {
	if exp := c.ExperienceBullets(); len(exp) > 0 {
		return exp
	}
	return c.Bullets
}

// Ratio returns the share of the bullet sample satisfying pred.
func (c *Context) Ratio(pred func(domain.Bullet) bool) float64 {
	sample := c.BulletSample()
	if len(sample) == 0 {
		return 0
	}
	n := 0
	for _, b := range sample {
		if pred(b) {
			n++
		}
	}
	return float64(n) / float64(len(sample))
}

// LinesIn returns the non-heading lines of a region.
func (c *Context) LinesIn(region domain.Region) []domain.LineEntry {
	var out []domain.LineEntry
	for _, l := range c.Lines {
		if !l.IsHeading && l.Region == region {
			out = append(out, l)
		}
	}
	return out
}

// Level is the extraction quality level.
func (c *Context) Level() domain.QualityLevel { return c.ExtractionQuality.Level }
