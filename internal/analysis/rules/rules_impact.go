package rules

import (
	"fmt"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/document"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

func impactRules() []Rule {
	return []Rule{
		{
			ID:          "low_numeric_density",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryImpact,
			ScoreDelta:  -5,
			Title:       "Few measurable results",
			Message:     "Only a small share of your bullets include numbers.",
			Explanation: "Numbers (percentages, volumes, team sizes, time saved) make achievements concrete.",
			Why:         "Quantified bullets are the strongest signal of impact to reviewers.",
			Fix:         "Add a metric to your key bullets: how much, how many, how fast.",
			Evaluate: func(c *document.Context) *Patch {
				sample := c.BulletSample()
				if len(sample) < c.Tuning.Document.MinBulletSample {
					return nil
				}
				ratio := c.Ratio(func(b domain.Bullet) bool { return b.HasMetric })
				if ratio == 0 || ratio >= c.Tuning.Document.NumericDensityMin {
					return nil
				}
				return &Patch{
					Message:  fmt.Sprintf("Only %s of your bullets include numbers.", pct(ratio)),
					Evidence: bulletEvidence(limitBullets(filterBullets(sample, noMetric), sampleSize), "no number"),
				}
			},
		},
		{
			ID:          "no_metrics_at_all",
			Severity:    domain.SeverityCritical,
			Category:    domain.CategoryImpact,
			ScoreDelta:  -6,
			Title:       "No measurable results",
			Message:     "None of your bullets include a number.",
			Explanation: "Without metrics every achievement reads the same.",
			Why:         "Reviewers cannot tell the scale of your work.",
			Fix:         "Quantify outcomes: users served, latency cut, revenue, team size, time saved.",
			Evaluate: func(c *document.Context) *Patch {
				sample := c.BulletSample()
				if len(sample) < 3 {
					return nil
				}
				if len(filterBullets(sample, noMetric)) != len(sample) {
					return nil
				}
				return withEvidence(bulletEvidence(limitBullets(sample, sampleSize), "no number"))
			},
		},
		{
			ID:          "missing_outcome_language",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryImpact,
			ScoreDelta:  -4,
			Title:       "Bullets describe tasks, not outcomes",
			Message:     "Few of your bullets say what changed because of your work.",
			Explanation: "Outcome words such as \"reduced\", \"increased\" or \"resulting in\" connect actions to results.",
			Why:         "Reviewers hire for results, not for activity.",
			Fix:         "End bullets with the result: \"..., reducing onboarding time by 30%\".",
			Evaluate: func(c *document.Context) *Patch {
				sample := c.BulletSample()
				if len(sample) == 0 {
					return nil
				}
				ratio := c.Ratio(func(b domain.Bullet) bool { return b.HasOutcomeLanguage })
				if ratio >= c.Tuning.Document.OutcomeRatioMin {
					return nil
				}
				ev := bulletEvidence(limitBullets(filterBullets(sample, func(b domain.Bullet) bool { return !b.HasOutcomeLanguage }), sampleSize), "no outcome")
				// A small sample or garbled extraction cannot support a warning.
				if len(sample) < c.Tuning.Document.MinBulletSample || c.Level() == domain.QualityLow {
					return &Patch{
						Severity:   domain.SeverityInfo,
						ScoreDelta: delta(-1),
						Message:    "We could not find outcome language in the bullets we could read.",
						Evidence:   ev,
					}
				}
				return withEvidence(ev)
			},
		},
		{
			ID:          "weak_action_verbs",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryImpact,
			ScoreDelta:  -3,
			Title:       "Bullets do not start with action verbs",
			Message:     "Most of your bullets do not open with a strong verb.",
			Explanation: "Starting with verbs such as \"Built\", \"Led\" or \"Reduced\" puts your contribution first.",
			Why:         "The first word of a bullet is what a skimming reviewer reads.",
			Fix:         "Rewrite bullets to start with a past-tense action verb.",
			Evaluate: func(c *document.Context) *Patch {
				sample := c.BulletSample()
				if len(sample) < c.Tuning.Document.MinBulletSample {
					return nil
				}
				ratio := c.Ratio(func(b domain.Bullet) bool { return b.StartsWithActionVerb })
				if ratio >= c.Tuning.Document.ActionVerbRatioMin {
					return nil
				}
				weak := filterBullets(sample, func(b domain.Bullet) bool { return !b.StartsWithActionVerb })
				return &Patch{
					Message:  fmt.Sprintf("Only %s of your bullets start with an action verb.", pct(ratio)),
					Evidence: bulletEvidence(limitBullets(weak, sampleSize), "weak opener"),
				}
			},
		},
		{
			ID:          "responsible_for_phrasing",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryImpact,
			ScoreDelta:  -3,
			Title:       "\"Responsible for\" phrasing",
			Message:     "Several bullets describe duties instead of achievements.",
			Explanation: "Phrases like \"Responsible for\" or \"Worked on\" describe a job description, not your results.",
			Why:         "Duties say what was expected; achievements say what you delivered.",
			Fix:         "Replace \"Responsible for X\" with what you did and what it achieved.",
			Evaluate: func(c *document.Context) *Patch {
				sample := c.BulletSample()
				weak := filterBullets(sample, func(b domain.Bullet) bool { return b.StartsWithResponsible })
				if len(weak) < 2 {
					return nil
				}
				if c.Ratio(func(b domain.Bullet) bool { return b.StartsWithResponsible }) <= c.Tuning.Document.ResponsibleRatioMax {
					return nil
				}
				return withEvidence(bulletEvidence(limitBullets(weak, sampleSize), "duty phrasing"))
			},
		},
		{
			ID:          "missing_scope_language",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryImpact,
			ScoreDelta:  -2,
			Title:       "Scope of work is unclear",
			Message:     "Your bullets do not mention the scale of your work.",
			Explanation: "Scope (team size, user base, number of services, regions) frames each achievement.",
			Why:         "The same task means different things for 100 or 10 million users.",
			Fix:         "Mention scale: \"for 2M users\", \"across 4 teams\", \"in 12 markets\".",
			Evaluate: func(c *document.Context) *Patch {
				sample := c.BulletSample()
				if len(sample) < c.Tuning.Document.MinBulletSample {
					return nil
				}
				if len(filterBullets(sample, func(b domain.Bullet) bool { return b.HasScopeLanguage })) > 0 {
					return nil
				}
				return fire()
			},
		},
		{
			ID:          "outcome_without_evidence",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryImpact,
			ScoreDelta:  -1,
			Title:       "Outcomes without numbers",
			Message:     "Some bullets claim an improvement but do not say how much.",
			Explanation: "\"Improved performance\" is a claim; \"improved p95 latency by 35%\" is evidence.",
			Why:         "Unquantified outcomes are easy to discount.",
			Fix:         "Attach a number to each improvement you mention.",
			Evaluate: func(c *document.Context) *Patch {
				vague := filterBullets(c.BulletSample(), func(b domain.Bullet) bool {
					return b.HasOutcomeLanguage && !b.HasOutcomeEvidence
				})
				if len(vague) < 2 {
					return nil
				}
				return withEvidence(bulletEvidence(limitBullets(vague, sampleSize), "outcome without number"))
			},
		},
	}
}

func noMetric(b domain.Bullet) bool { return !b.HasMetric }
