package document

import (
	"strings"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/extraction"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// skillsAliasLine reports whether a line near the top is a labelled skills
// list standing in for a Skills heading.
func skillsAliasLine(l domain.LineEntry, t config.DocumentTuning) bool {
	return l.Rank <= t.SkillsAliasWindow && skillsAlias.MatchString(l.Text)
}

// summaryAlias looks for an untitled intro paragraph in the header region
// that reads like a professional summary. It returns the paragraph's first
// line and text.
func summaryAlias(lines []domain.LineEntry, t config.DocumentTuning) (HeadingSuggestion, bool) {
	var para []domain.LineEntry
	flush := func() (HeadingSuggestion, bool) {
		defer func() { para = para[:0] }()
		if len(para) == 0 {
			return HeadingSuggestion{}, false
		}
		texts := make([]string, len(para))
		for i, l := range para {
			texts[i] = l.Text
		}
		text := strings.Join(texts, " ")
		if !looksLikeSummary(text, t) {
			return HeadingSuggestion{}, false
		}
		return HeadingSuggestion{Section: domain.SectionSummary, Line: para[0].LineNumber, Text: text}, true
	}

	for _, l := range lines {
		if l.Rank > t.SummaryAliasWindow || l.Region != domain.RegionHeader {
			break
		}
		if !summaryCandidate(l, t) {
			if s, ok := flush(); ok {
				return s, true
			}
			continue
		}
		para = append(para, l)
	}
	return flush()
}

func summaryCandidate(l domain.LineEntry, t config.DocumentTuning) bool {
	if l.IsHeading || skillsAliasLine(l, t) {
		return false
	}
	if _, _, ok := extraction.LeadingMarker(l.Text); ok {
		return false
	}
	return !emailRe.MatchString(l.Text) && !hasPhone(l.Text) && !urlRe.MatchString(l.Text)
}

func looksLikeSummary(text string, t config.DocumentTuning) bool {
	words := len(strings.Fields(text))
	if words < t.SummaryMinWords || words > t.SummaryMaxWords {
		return false
	}
	sentences := len(sentenceEnd.FindAllStringIndex(text, -1))
	if sentences == 0 {
		sentences = 1
	}
	if sentences > t.SummaryMaxSentences {
		return false
	}
	return summaryRoleHint.MatchString(text) &&
		summarySpecializationHint.MatchString(text) &&
		summarySeniorityHint.MatchString(text)
}
