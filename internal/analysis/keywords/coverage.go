package keywords

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// Analyze measures how well text covers the pack's keywords. Each keyword is
// tested against the whole document, the experience-region lines and the
// skills-region lines; experience matches carry full weight, skills-only
// matches carry partial weight.
func Analyze(text string, lines []domain.LineEntry, pack Pack, t config.KeywordTuning) domain.KeywordCoverage {
	experience, skills := regionText(lines)

	cov := domain.KeywordCoverage{
		Role:            pack.ID,
		RoleLabel:       pack.Label,
		Total:           len(pack.matchers),
		Found:           []string{},
		Missing:         []string{},
		MissingCritical: []string{},
		MissingStrong:   []string{},
		MissingByTier: map[domain.Tier][]string{
			domain.TierCritical: {},
			domain.TierStrong:   {},
			domain.TierNice:     {},
		},
		SkillsOnly: []string{},
	}

	var weighted float64
	matched := 0
	for _, m := range pack.matchers {
		switch m.def.Tier {
		case domain.TierCritical:
			cov.CriticalTotal++
		case domain.TierStrong:
			cov.StrongTotal++
		}

		inExperience := m.matches(experience)
		inSkills := m.matches(skills)
		if inSkills {
			cov.FoundInSkillsCount++
			matched += m.matchedChars(skills)
		}
		switch {
		case inExperience:
			cov.FoundInExperienceCount++
			weighted += t.ExperienceWeight
		case inSkills:
			weighted += t.SkillsOnlyWeight
			cov.SkillsOnly = append(cov.SkillsOnly, m.def.Label)
		}

		if inExperience || inSkills || m.matches(text) {
			cov.Found = append(cov.Found, m.def.Label)
			continue
		}
		cov.Missing = append(cov.Missing, m.def.Label)
		cov.MissingByTier[m.def.Tier] = append(cov.MissingByTier[m.def.Tier], m.def.Label)
		switch m.def.Tier {
		case domain.TierCritical:
			cov.MissingCritical = append(cov.MissingCritical, m.def.Label)
		case domain.TierStrong:
			cov.MissingStrong = append(cov.MissingStrong, m.def.Label)
		}
	}

	if cov.Total > 0 {
		cov.CoveragePct = int(math.Round(100 * float64(len(cov.Found)) / float64(cov.Total)))
		cov.WeightedCoveragePct = int(math.Round(100 * weighted / float64(cov.Total)))
	}
	cov.KeywordStuffingSuspected = stuffing(cov, utf8.RuneCountInString(skills), matched, t)
	return cov
}

// stuffing flags a skills block that looks padded for pattern matching:
// many distinct keywords packed into a short block, or keyword matches
// covering more than the density share of the block's characters.
// StuffingMinSkillsOnly, when positive, also requires that many keywords to
// be missing from the experience region.
func stuffing(cov domain.KeywordCoverage, skillsChars, matched int, t config.KeywordTuning) bool {
	if skillsChars == 0 {
		return false
	}
	if t.StuffingMinSkillsOnly > 0 && len(cov.SkillsOnly) < t.StuffingMinSkillsOnly {
		return false
	}
	dense := cov.FoundInSkillsCount >= t.StuffingMinKeywords && skillsChars <= t.StuffingMaxSkillsChars
	return dense || float64(matched)/float64(skillsChars) > t.StuffingDensity
}

// regionText joins the non-heading lines of the experience and skills regions.
func regionText(lines []domain.LineEntry) (experience, skills string) {
	var exp, sk []string
	for _, l := range lines {
		if l.IsHeading {
			continue
		}
		switch l.Region {
		case domain.RegionExperience:
			exp = append(exp, l.Text)
		case domain.RegionSkills:
			sk = append(sk, l.Text)
		}
	}
	return strings.Join(exp, "\n"), strings.Join(sk, "\n")
}
