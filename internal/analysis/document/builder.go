package document

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/extraction"
	"github.com/fairyhunter13/cv-feedback/internal/analysis/keywords"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

const headerBlock = "header#0"

// Build folds normalized text into a Context. The role id is resolved
// through the registry, falling back to its default role. Build never fails:
// empty or garbled text yields a sparse context.
func Build(text, roleID string, reg *keywords.Registry, t config.Tuning) *Context {
	dt := t.Document
	pack := reg.Pack(roleID)

	var physical []string
	if text != "" {
		physical = strings.Split(text, "\n")
	}

	// Alias detection needs to know about headings anywhere in the document.
	explicit := make(map[domain.Section]bool)
	for _, raw := range physical {
		if s, ok := matchHeading(strings.TrimSpace(raw), dt.HeadingMaxChars); ok {
			explicit[s] = true
		}
	}

	ctx := &Context{
		Text:               text,
		Role:               pack.ID,
		CharCount:          utf8.RuneCountInString(text),
		WordCount:          len(strings.Fields(text)),
		Lines:              []domain.LineEntry{},
		Bullets:            []domain.Bullet{},
		Sections:           make(map[domain.Section]SectionPresence),
		HeadingSuggestions: []HeadingSuggestion{},
		DateFormats:        DateFormats{UsedFormats: []DateFormat{}, Counts: make(map[DateFormat]int), Evidence: []DateEvidence{}},
		MergedBullets:      []MergedBullet{},
		DuplicateLines:     []LineRef{},
		LongLines:          []LineRef{},
		CapsHeavyLines:     []LineRef{},
		TableLines:         []LineRef{},
		PronounLines:       []LineRef{},
		Tuning:             t,
	}
	for s := range explicit {
		ctx.Sections[s] = SectionPresence{Explicit: true}
	}

	var (
		rank        int
		section     = domain.SectionOther
		seenHeading bool
		blockKey    = headerBlock
		blocks      = make(map[domain.Section]int)
		seenText    = make(map[string]bool)
		mergedLines []int
	)
	for i, raw := range physical {
		lineText := strings.TrimSpace(raw)
		if lineText == "" {
			continue
		}
		rank++
		entry := domain.LineEntry{Rank: rank, LineNumber: i + 1, Text: lineText}

		if s, ok := matchHeading(lineText, dt.HeadingMaxChars); ok {
			section, seenHeading = s, true
			blocks[s]++
			blockKey = fmt.Sprintf("%s#%d", s, blocks[s])
			entry.Section, entry.Region, entry.BlockKey, entry.IsHeading = s, regionOf(s), blockKey, true
			ctx.Lines = append(ctx.Lines, entry)
			continue
		}

		entry.Section, entry.BlockKey = section, blockKey
		entry.Region = lineRegion(entry, seenHeading, explicit[domain.SectionSkills], dt)
		if entry.Region == domain.RegionSkills && section != domain.SectionSkills && !ctx.Sections[domain.SectionSkills].Inferred {
			ctx.Sections[domain.SectionSkills] = SectionPresence{Inferred: true}
			ctx.HeadingSuggestions = append(ctx.HeadingSuggestions, HeadingSuggestion{
				Section: domain.SectionSkills, Line: entry.LineNumber, Text: lineText,
			})
		}
		ctx.Lines = append(ctx.Lines, entry)

		segs, markers, merged := splitBullets(lineText, entry.Region != domain.RegionHeader, dt.PlainBulletMinWords)
		if merged {
			mergedLines = append(mergedLines, entry.LineNumber)
			ctx.MergedBullets = append(ctx.MergedBullets, MergedBullet{Line: entry.LineNumber, Text: lineText, Markers: markers})
		}
		for _, sg := range segs {
			b := newBullet(entry, sg)
			if merged {
				b.MergedFromLine = entry.LineNumber
			}
			ctx.Bullets = append(ctx.Bullets, b)
		}

		ctx.DateFormats.addDates(entry.LineNumber, lineText)
		ctx.scanLine(entry, seenText)
	}
	ctx.DateFormats.sortFormats()

	if !explicit[domain.SectionSummary] {
		if s, ok := summaryAlias(ctx.Lines, dt); ok {
			ctx.Sections[domain.SectionSummary] = SectionPresence{Inferred: true}
			ctx.HeadingSuggestions = append(ctx.HeadingSuggestions, s)
		}
	}
	sort.SliceStable(ctx.HeadingSuggestions, func(i, j int) bool {
		return ctx.HeadingSuggestions[i].Line < ctx.HeadingSuggestions[j].Line
	})

	ctx.Contact = Contact{
		HasEmail:    emailRe.MatchString(text),
		HasPhone:    hasPhone(text),
		HasLinkedIn: linkedinRe.MatchString(text),
	}
	ctx.Contradictions = findContradictions(ctx.Lines, dt.ContradictionWindow)
	ctx.KeywordCoverage = keywords.Analyze(text, ctx.Lines, pack, t.Keywords)
	ctx.ExtractionQuality = extraction.Analyze(physical, mergedLines, t.Extraction)
	ctx.CVSignalScore = cvSignalScore(ctx)
	ctx.LikelyNonCV = ctx.CVSignalScore <= dt.NonCVMaxSignal
	return ctx
}

// matchHeading classifies a short line against the heading table.
func matchHeading(text string, maxChars int) (domain.Section, bool) {
	if text == "" || utf8.RuneCountInString(text) > maxChars {
		return "", false
	}
	for _, h := range headingTable {
		if h.re.MatchString(text) {
			return h.section, true
		}
	}
	return "", false
}

func regionOf(s domain.Section) domain.Region {
	switch s {
	case domain.SectionExperience, domain.SectionProjects:
		return domain.RegionExperience
	case domain.SectionSkills:
		return domain.RegionSkills
	default:
		return domain.RegionOther
	}
}

func lineRegion(l domain.LineEntry, seenHeading, skillsExplicit bool, t config.DocumentTuning) domain.Region {
	switch l.Section {
	case domain.SectionExperience, domain.SectionProjects:
		return domain.RegionExperience
	case domain.SectionSkills:
		return domain.RegionSkills
	}
	if !skillsExplicit && skillsAliasLine(l, t) {
		return domain.RegionSkills
	}
	if !seenHeading {
		return domain.RegionHeader
	}
	return domain.RegionOther
}

// scanLine collects the per-line signals: duplicates, long lines, caps-heavy
// lines, flattened tables and first-person pronouns.
func (c *Context) scanLine(l domain.LineEntry, seen map[string]bool) {
	dt := c.Tuning.Document
	ref := LineRef{Line: l.LineNumber, Text: l.Text}
	n := utf8.RuneCountInString(l.Text)

	if n >= dt.DuplicateMinChars {
		key := strings.ToLower(l.Text)
		if seen[key] {
			c.DuplicateLines = append(c.DuplicateLines, ref)
		}
		seen[key] = true
	}
	if n > dt.LongLineChars {
		c.LongLines = append(c.LongLines, ref)
	}
	if capsHeavy(l.Text, dt.CapsHeavyMinLetters, dt.CapsHeavyRatio) {
		c.CapsHeavyLines = append(c.CapsHeavyLines, ref)
	}
	if l.Region != domain.RegionHeader && tableRow.MatchString(l.Text) {
		c.TableLines = append(c.TableLines, ref)
	}
	if pronounRe.MatchString(l.Text) {
		c.PronounLines = append(c.PronounLines, ref)
	}
}

func capsHeavy(text string, minLetters int, ratio float64) bool {
	letters, upper := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return letters >= minLetters && float64(upper)/float64(letters) > ratio
}

var nonDigit = regexp.MustCompile(`\D`)

// hasPhone accepts phone-like runs with 9 to 15 digits, which excludes year
// ranges such as "2019 - 2021".
func hasPhone(text string) bool {
	for _, m := range phoneRe.FindAllString(text, -1) {
		d := len(nonDigit.ReplaceAllString(m, ""))
		if d >= 9 && d <= 15 {
			return true
		}
	}
	return false
}

// cvSignalScore sums seven résumé-likeness signals.
func cvSignalScore(c *Context) int {
	score := 0
	add := func(ok bool) {
		if ok {
			score++
		}
	}
	sections := c.SectionCount()
	add(c.Contact.HasEmail || c.Contact.HasPhone)
	add(sections >= 2)
	add(sections >= 4)
	add(c.Has(domain.SectionExperience))
	add(len(c.Bullets) >= 3)
	add(len(c.Bullets) >= 8)
	add(len(c.DateFormats.UsedFormats) > 0)
	return score
}
