package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/document"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

func consistencyRules() []Rule {
	return []Rule{
		{
			ID:          "inconsistent_date_format",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryConsistency,
			ScoreDelta:  -4,
			Title:       "Mixed date formats",
			Message:     "Your CV mixes several date formats.",
			Explanation: "Dates written as \"Jan 2021\", \"01/2021\" and \"2021\" in one document look inconsistent.",
			Why:         "Parsers compute tenure from dates; mixed formats cause misreads.",
			Fix:         "Pick one format, for example \"Jan 2021 - Mar 2023\", and use it everywhere.",
			Evaluate: func(c *document.Context) *Patch {
				used := c.DateFormats.UsedFormats
				if len(used) < 2 {
					return nil
				}
				names := make([]string, len(used))
				ev := make([]domain.Evidence, 0, len(used))
				for i, f := range used {
					names[i] = string(f)
					for _, d := range c.DateFormats.Evidence {
						if d.Format == f {
							ev = append(ev, domain.Evidence{
								Snippet:    d.Text,
								Line:       d.Line,
								Reason:     fmt.Sprintf("uses %s", f),
								Details:    d.Match,
								Source:     "date",
								Confidence: 0.95,
							})
							break
						}
					}
				}
				return &Patch{
					Message:  fmt.Sprintf("Your CV mixes %d date formats: %s.", len(used), strings.Join(names, ", ")),
					Evidence: ev,
				}
			},
		},
		{
			ID:          "missing_dates",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryConsistency,
			ScoreDelta:  -3,
			Title:       "No dates found",
			Message:     "Your experience has no dates.",
			Explanation: "Each role should show when it started and ended.",
			Why:         "Reviewers and ATS filters compute years of experience from dates.",
			Fix:         "Add start and end dates to every role, e.g. \"Mar 2020 - Present\".",
			Evaluate: func(c *document.Context) *Patch {
				if !c.Has(domain.SectionExperience) || len(c.DateFormats.UsedFormats) > 0 {
					return nil
				}
				return fire()
			},
		},
		{
			ID:          "inconsistent_bullet_markers",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryConsistency,
			ScoreDelta:  -1,
			Title:       "Mixed bullet styles",
			Message:     "Your CV uses different bullet symbols.",
			Explanation: "Switching between \"-\", \"•\" and other symbols looks unpolished.",
			Why:         "Visual consistency signals attention to detail.",
			Fix:         "Use one bullet symbol throughout.",
			Evaluate: func(c *document.Context) *Patch {
				firstByMarker := make(map[string]domain.Bullet)
				for _, b := range c.Bullets {
					if b.MergedFromLine != 0 {
						continue
					}
					if _, ok := firstByMarker[b.Marker]; !ok {
						firstByMarker[b.Marker] = b
					}
				}
				if len(firstByMarker) < 2 {
					return nil
				}
				markers := make([]string, 0, len(firstByMarker))
				for m := range firstByMarker {
					markers = append(markers, m)
				}
				sort.Strings(markers)
				ev := make([]domain.Evidence, 0, len(markers))
				for _, m := range markers {
					b := firstByMarker[m]
					ev = append(ev, domain.Evidence{Snippet: m + " " + b.Line, Line: b.LineNumber, Reason: fmt.Sprintf("marker %q", m), Source: "bullet"})
				}
				return withEvidence(ev)
			},
		},
		{
			ID:          "inconsistent_trailing_punctuation",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryConsistency,
			ScoreDelta:  -1,
			Title:       "Mixed bullet punctuation",
			Message:     "Some bullets end with a period and others do not.",
			Explanation: "Either style is fine; mixing them is not.",
			Why:         "Small inconsistencies add up to an unpolished impression.",
			Fix:         "End every bullet the same way, with or without a period.",
			Evaluate: func(c *document.Context) *Patch {
				sample := c.BulletSample()
				n := len(sample)
				if n < c.Tuning.Document.MinBulletSample {
					return nil
				}
				with := filterBullets(sample, func(b domain.Bullet) bool { return b.HasTrailingPunctuation })
				without := filterBullets(sample, func(b domain.Bullet) bool { return !b.HasTrailingPunctuation })
				minority := len(with)
				if len(without) < minority {
					minority = len(without)
				}
				if minority == 0 || minority*4 < n {
					return nil
				}
				ev := append(bulletEvidence(limitBullets(with, 1), "ends with punctuation"),
					bulletEvidence(limitBullets(without, 1), "no trailing punctuation")...)
				return withEvidence(ev)
			},
		},
		{
			ID:          "stack_contradiction",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryConsistency,
			ScoreDelta:  -3,
			Title:       "Conflicting technology stack",
			Message:     "One role mentions technology stacks that usually exclude each other.",
			Explanation: "For example, \"MERN\" already implies React, so listing Angular in the same role reads as a contradiction.",
			Why:         "Reviewers with domain knowledge will question the accuracy of the role.",
			Fix:         "Clarify which part of the project used which framework, or correct the stack name.",
			Evaluate: func(c *document.Context) *Patch {
				if len(c.Contradictions) == 0 {
					return nil
				}
				ev := make([]domain.Evidence, 0, len(c.Contradictions))
				for _, k := range c.Contradictions {
					ev = append(ev, domain.Evidence{
						Snippet:    k.Text,
						LineStart:  k.LineStart,
						LineEnd:    k.LineEnd,
						Reason:     strings.ReplaceAll(k.Rule, "_", " "),
						Source:     "experience",
						Confidence: 0.7,
					})
				}
				return withEvidence(ev)
			},
		},
		{
			ID:          "first_person_pronouns",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryConsistency,
			ScoreDelta:  -1,
			Title:       "First-person pronouns",
			Message:     "Some lines use \"I\" or \"my\".",
			Explanation: "CV bullets conventionally drop the subject: \"Built X\" rather than \"I built X\".",
			Why:         "Pronouns add words without adding information.",
			Fix:         "Start bullets with the verb and drop \"I\", \"me\" and \"my\".",
			Evaluate: func(c *document.Context) *Patch {
				if len(c.PronounLines) < 2 {
					return nil
				}
				return withEvidence(lineEvidence(limitRefs(c.PronounLines, sampleSize), "first person"))
			},
		},
	}
}
