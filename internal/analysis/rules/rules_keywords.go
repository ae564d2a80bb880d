package rules

import (
	"fmt"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/document"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// Rule ids whose score delta is split between a fixed part and an
// extraction-scaled part.
const (
	MissingRoleKeywords     = "missing_role_keywords"
	MissingCriticalKeywords = "missing_critical_keywords"
)

// severeCoverage is the weighted coverage below which missing keywords are critical.
const severeCoverage = 30

func keywordRules() []Rule {
	return []Rule{
		{
			ID:          MissingRoleKeywords,
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryKeywords,
			ScoreDelta:  -6,
			Title:       "Low keyword coverage for the role",
			Message:     "Your CV covers few of the keywords expected for this role.",
			Explanation: "Coverage counts keywords found in your experience fully and keywords found only in the skills list partially.",
			Why:         "Recruiters and ATS filters search for role keywords, and weigh them higher when backed by experience.",
			Fix:         "Mention the tools and practices you actually used inside your experience bullets.",
			Evaluate: func(c *document.Context) *Patch {
				cov := c.KeywordCoverage
				if cov.Total == 0 || cov.WeightedCoveragePct >= c.Tuning.Document.KeywordCoverageTarget {
					return nil
				}
				p := &Patch{
					Message: fmt.Sprintf("Weighted keyword coverage for %s is %d%%.", cov.RoleLabel, cov.WeightedCoveragePct),
					Evidence: []domain.Evidence{{
						Snippet: "Missing: " + listLabels(cov.Missing, 6),
						Details: fmt.Sprintf("%d of %d keywords found, %d in experience", len(cov.Found), cov.Total, cov.FoundInExperienceCount),
						Source:  "keyword_coverage",
					}},
				}
				if cov.WeightedCoveragePct < severeCoverage {
					p.Severity = domain.SeverityCritical
					p.ScoreDelta = delta(-8)
				}
				return p
			},
		},
		{
			ID:          MissingCriticalKeywords,
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryKeywords,
			ScoreDelta:  -4,
			Title:       "Core role keywords missing",
			Message:     "Your CV does not mention a core skill for this role.",
			Explanation: "Each role has a few must-have keywords that filters search for first.",
			Why:         "Missing a must-have keyword can exclude you from a search entirely.",
			Fix:         "If you have the skill, name it explicitly in a role where you used it.",
			Evaluate: func(c *document.Context) *Patch {
				missing := c.KeywordCoverage.MissingCritical
				if len(missing) == 0 {
					return nil
				}
				p := &Patch{
					Message: fmt.Sprintf("Missing core keywords: %s.", listLabels(missing, 4)),
					Evidence: []domain.Evidence{{
						Snippet: "Missing: " + listLabels(missing, 4),
						Details: fmt.Sprintf("%d of %d core keywords missing", len(missing), c.KeywordCoverage.CriticalTotal),
						Source:  "keyword_coverage",
					}},
				}
				if len(missing) >= 2 {
					p.Severity = domain.SeverityCritical
					p.ScoreDelta = delta(-6)
				}
				return p
			},
		},
		{
			ID:          "keywords_only_in_skills",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryKeywords,
			ScoreDelta:  -3,
			Title:       "Skills not backed by experience",
			Message:     "Several skills appear only in your skills list.",
			Explanation: "A skill listed but never used in a role carries less weight.",
			Why:         "Reviewers look for where and how you applied each skill.",
			Fix:         "Reference these skills inside the experience bullets where you used them.",
			Evaluate: func(c *document.Context) *Patch {
				cov := c.KeywordCoverage
				if len(cov.SkillsOnly) < 3 || cov.KeywordStuffingSuspected {
					return nil
				}
				return &Patch{
					Message: fmt.Sprintf("%d skills appear only in your skills list.", len(cov.SkillsOnly)),
					Evidence: []domain.Evidence{{
						Snippet: "Skills only: " + listLabels(cov.SkillsOnly, 6),
						Source:  "keyword_coverage",
					}},
				}
			},
		},
		{
			ID:          "keyword_stuffing",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryKeywords,
			ScoreDelta:  -3,
			Title:       "Skills list looks padded",
			Message:     "Your skills list packs many keywords with little support elsewhere.",
			Explanation: "Dense keyword lists without matching experience look written for the filter, not the reader.",
			Why:         "Reviewers discount keyword stuffing and some ATS vendors penalise it.",
			Fix:         "Keep the skills you can discuss in an interview and show them in your experience.",
			Evaluate: func(c *document.Context) *Patch {
				cov := c.KeywordCoverage
				if !cov.KeywordStuffingSuspected {
					return nil
				}
				return withEvidence([]domain.Evidence{{
					Snippet: "Skills only: " + listLabels(cov.SkillsOnly, 6),
					Details: fmt.Sprintf("%d keywords in the skills block, %d backed by experience", cov.FoundInSkillsCount, cov.FoundInExperienceCount),
					Source:  "keyword_coverage",
				}})
			},
		},
	}
}
