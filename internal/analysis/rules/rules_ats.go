package rules

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/document"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

func atsRules() []Rule {
	return []Rule{
		{
			ID:          "missing_email",
			Severity:    domain.SeverityCritical,
			Category:    domain.CategoryATS,
			ScoreDelta:  -8,
			Title:       "No email address found",
			Message:     "We could not find an email address in your CV.",
			Explanation: "Applicant tracking systems extract contact details from the document text.",
			Why:         "Recruiters cannot reach you if the parser finds no email.",
			Fix:         "Add a professional email address near your name at the top.",
			Evaluate: func(c *document.Context) *Patch {
				if c.Contact.HasEmail {
					return nil
				}
				return fire()
			},
			Samples: headerEvidence,
		},
		{
			ID:          "missing_phone",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryATS,
			ScoreDelta:  -3,
			Title:       "No phone number found",
			Message:     "We could not find a phone number in your CV.",
			Explanation: "Most screening forms expect a phone number next to the email.",
			Why:         "Some recruiters prefer a quick call before scheduling interviews.",
			Fix:         "Add a phone number with country code to the contact line.",
			Evaluate: func(c *document.Context) *Patch {
				if c.Contact.HasPhone {
					return nil
				}
				return fire()
			},
			Samples: headerEvidence,
		},
		{
			ID:          "missing_linkedin",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryATS,
			ScoreDelta:  -1,
			Title:       "No LinkedIn profile",
			Message:     "Your CV does not link to a LinkedIn profile.",
			Explanation: "Recruiters often cross-check a CV against the candidate's public profile.",
			Why:         "A profile link adds credibility and context at no cost.",
			Fix:         "Add your linkedin.com/in/... URL to the contact line.",
			Evaluate: func(c *document.Context) *Patch {
				if c.Contact.HasLinkedIn {
					return nil
				}
				return fire()
			},
			Samples: headerEvidence,
		},
		{
			ID:          "too_short_for_ats",
			Severity:    domain.SeverityCritical,
			Category:    domain.CategoryATS,
			ScoreDelta:  -6,
			Title:       "Very little text was extracted",
			Message:     "Your CV contains very little readable text.",
			Explanation: "Parsers score what they can read. Short or image-based CVs lose most of their content.",
			Why:         "An ATS may discard or rank down a CV with almost no extractable content.",
			Fix:         "Export a text-based PDF or DOCX and describe your experience in full sentences and bullets.",
			Evaluate: func(c *document.Context) *Patch {
				limit := c.Tuning.Document.ShortDocumentChars
				if c.CharCount >= limit {
					return nil
				}
				return withEvidence(summaryEvidence(
					fmt.Sprintf("%d characters extracted", c.CharCount),
					fmt.Sprintf("minimum expected: %d", limit),
				))
			},
		},
		{
			ID:          "too_long_document",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryATS,
			ScoreDelta:  -2,
			Title:       "CV is very long",
			Message:     "Your CV is longer than most reviewers will read.",
			Explanation: "Recruiters skim; long CVs bury the strongest points.",
			Why:         "Reviewers spend seconds on a first pass.",
			Fix:         "Trim older roles and keep the most relevant achievements.",
			Evaluate: func(c *document.Context) *Patch {
				limit := c.Tuning.Document.LongDocumentWords
				if c.WordCount <= limit {
					return nil
				}
				return withEvidence(summaryEvidence(
					fmt.Sprintf("%d words", c.WordCount),
					fmt.Sprintf("recommended maximum: %d", limit),
				))
			},
		},
		{
			ID:          "long_lines",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryATS,
			ScoreDelta:  -2,
			Title:       "Several lines are very long",
			Message:     "Some lines run on for more than a sentence or two.",
			Explanation: "Long lines are hard to scan and often come from multi-column layouts.",
			Why:         "Dense lines hide keywords and achievements.",
			Fix:         "Break long lines into separate bullets.",
			Evaluate: func(c *document.Context) *Patch {
				if len(c.LongLines) < 3 {
					return nil
				}
				return withEvidence(lineEvidence(limitRefs(c.LongLines, sampleSize), "long line"))
			},
		},
		{
			ID:          "caps_heavy_lines",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryATS,
			ScoreDelta:  -1,
			Title:       "Text written in capitals",
			Message:     "Some lines are written almost entirely in capital letters.",
			Explanation: "All-caps text reads as shouting and is harder to scan.",
			Why:         "Readability matters to human reviewers after the ATS pass.",
			Fix:         "Use capitals for headings only.",
			Evaluate: func(c *document.Context) *Patch {
				if len(c.CapsHeavyLines) < 2 {
					return nil
				}
				return withEvidence(lineEvidence(limitRefs(c.CapsHeavyLines, sampleSize), "mostly uppercase"))
			},
		},
		{
			ID:          "merged_bullets_detected",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryATS,
			ScoreDelta:  -2,
			Title:       "Bullets merged onto one line",
			Message:     "Several bullet points were read as a single line.",
			Explanation: "This usually comes from tables, columns or custom bullet glyphs in the source file.",
			Why:         "Parsers may read merged bullets as one long, unstructured sentence.",
			Fix:         "Use a single-column layout with standard bullets, one per line.",
			Evaluate: func(c *document.Context) *Patch {
				if len(c.MergedBullets) == 0 {
					return nil
				}
				ev := make([]domain.Evidence, 0, sampleSize)
				for _, m := range c.MergedBullets {
					ev = append(ev, domain.Evidence{
						Snippet:    m.Text,
						Line:       m.Line,
						Reason:     fmt.Sprintf("%d bullets on one line", m.Markers),
						Source:     "line",
						Confidence: 0.9,
					})
					if len(ev) == sampleSize {
						break
					}
				}
				return withEvidence(ev)
			},
		},
		{
			ID:          "low_extraction_quality",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryATS,
			ScoreDelta:  -2,
			Title:       "Text extraction looks unreliable",
			Message:     "The text we extracted from your file looks garbled.",
			Explanation: "Layout features such as columns, tables and text boxes scramble the reading order.",
			Why:         "If we struggle to read it, an ATS likely does too.",
			Fix:         "Use a simple single-column template and export a text-based PDF.",
			Evaluate: func(c *document.Context) *Patch {
				q := c.ExtractionQuality
				if q.Level != domain.QualityLow {
					return nil
				}
				return withEvidence(summaryEvidence(
					fmt.Sprintf("extraction quality %.2f (%s)", q.Score, q.Level),
					strings.Join(q.Notes, "; "),
				))
			},
		},
		{
			ID:          "likely_not_cv",
			Severity:    domain.SeverityCritical,
			Category:    domain.CategoryATS,
			ScoreDelta:  -6,
			Title:       "This does not look like a CV",
			Message:     "The document lacks the usual CV structure.",
			Explanation: "We found few of the signals a CV normally has: contact details, sections, bullets and dates.",
			Why:         "Scores for non-CV documents are not meaningful.",
			Fix:         "Upload your CV, with contact details, an experience section and dated roles.",
			Evaluate: func(c *document.Context) *Patch {
				if !c.LikelyNonCV {
					return nil
				}
				return withEvidence(summaryEvidence(
					fmt.Sprintf("CV signal score %d of 7", c.CVSignalScore),
					fmt.Sprintf("%d sections, %d bullets", c.SectionCount(), len(c.Bullets)),
				))
			},
		},
		{
			ID:          "table_layout_suspected",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryATS,
			ScoreDelta:  -2,
			Title:       "Table layout detected",
			Message:     "Parts of your CV look like a table.",
			Explanation: "Tables are often flattened into cells separated by pipes or spaces.",
			Why:         "ATS parsers frequently lose the association between table cells.",
			Fix:         "Replace tables with plain headings and bullets.",
			Evaluate: func(c *document.Context) *Patch {
				if len(c.TableLines) < 3 {
					return nil
				}
				return withEvidence(lineEvidence(limitRefs(c.TableLines, sampleSize), "table row"))
			},
		},
	}
}
