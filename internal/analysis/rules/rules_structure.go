package rules

import (
	"fmt"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/document"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

const (
	longBulletWords  = 35
	shortBulletWords = 4
)

func structureRules() []Rule {
	return []Rule{
		{
			ID:          "no_experience_section",
			Severity:    domain.SeverityCritical,
			Category:    domain.CategoryStructure,
			ScoreDelta:  -6,
			Title:       "No experience section",
			Message:     "We found projects but no work experience section.",
			Explanation: "Parsers look for a heading such as \"Experience\" to locate your work history.",
			Why:         "Without it, roles may not be recognised as employment.",
			Fix:         "Add an \"Experience\" heading above your roles, even for internships or freelance work.",
			Evaluate: func(c *document.Context) *Patch {
				if c.Has(domain.SectionExperience) || !c.Has(domain.SectionProjects) {
					return nil
				}
				return fire()
			},
		},
		{
			ID:          "no_projects_and_no_experience",
			Severity:    domain.SeverityCritical,
			Category:    domain.CategoryStructure,
			ScoreDelta:  -8,
			Title:       "No experience or projects",
			Message:     "We found neither an experience section nor a projects section.",
			Explanation: "Experience or projects are the core of a CV; everything else supports them.",
			Why:         "Reviewers cannot judge what you have built or delivered.",
			Fix:         "Add an \"Experience\" section, or a \"Projects\" section if you are early in your career.",
			Evaluate: func(c *document.Context) *Patch {
				if c.Has(domain.SectionExperience) || c.Has(domain.SectionProjects) {
					return nil
				}
				return fire()
			},
		},
		{
			ID:          "no_education_section",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryStructure,
			ScoreDelta:  -3,
			Title:       "No education section",
			Message:     "We could not find an education section.",
			Explanation: "Many screening filters check for degrees or equivalent training.",
			Why:         "Missing education can fail automated minimum-requirement checks.",
			Fix:         "Add an \"Education\" heading with your degree, bootcamp or certifications.",
			Evaluate: func(c *document.Context) *Patch {
				if c.Has(domain.SectionEducation) {
					return nil
				}
				return fire()
			},
		},
		{
			ID:          "no_skills_section",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryStructure,
			ScoreDelta:  -3,
			Title:       "No skills section",
			Message:     "We could not find a skills section.",
			Explanation: "A skills list is where ATS keyword matching starts.",
			Why:         "Recruiters search by technology; a skills section makes you findable.",
			Fix:         "Add a \"Skills\" heading listing your main languages, frameworks and tools.",
			Evaluate: func(c *document.Context) *Patch {
				if c.Has(domain.SectionSkills) {
					return nil
				}
				return fire()
			},
		},
		{
			ID:          "skills_heading_suggestion",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryStructure,
			ScoreDelta:  0,
			Title:       "Give your skills a heading",
			Message:     "Your skills are listed without a \"Skills\" heading.",
			Explanation: "We recognised a labelled list of technologies near the top of the document.",
			Why:         "Some parsers only read skills under an explicit heading.",
			Fix:         "Put a \"Skills\" heading above the list.",
			Evaluate:    suggestion(domain.SectionSkills),
		},
		{
			ID:          "summary_heading_suggestion",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryStructure,
			ScoreDelta:  0,
			Title:       "Give your summary a heading",
			Message:     "Your introduction reads like a summary but has no heading.",
			Explanation: "We recognised an intro paragraph describing your role and seniority.",
			Why:         "A labelled summary is easier for reviewers to find.",
			Fix:         "Put a \"Summary\" heading above the paragraph.",
			Evaluate:    suggestion(domain.SectionSummary),
		},
		{
			ID:          "no_summary",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryStructure,
			ScoreDelta:  -1,
			Title:       "No summary",
			Message:     "Your CV has no professional summary.",
			Explanation: "A two or three sentence summary frames the rest of the document.",
			Why:         "Reviewers decide quickly; a summary tells them what to look for.",
			Fix:         "Open with a short summary of your role, specialization and years of experience.",
			Evaluate: func(c *document.Context) *Patch {
				if c.Has(domain.SectionSummary) {
					return nil
				}
				return fire()
			},
			Samples: headerEvidence,
		},
		{
			ID:          "few_bullets",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryStructure,
			ScoreDelta:  -3,
			Title:       "Few bullet points",
			Message:     "Your experience has very few bullet points.",
			Explanation: "Bullets are how reviewers scan achievements.",
			Why:         "Paragraphs of prose hide results and are skipped.",
			Fix:         "Describe each role with three to five bullets, one achievement each.",
			Evaluate: func(c *document.Context) *Patch {
				if !c.Has(domain.SectionExperience) && !c.Has(domain.SectionProjects) {
					return nil
				}
				n := len(c.ExperienceBullets())
				if n >= 3 {
					return nil
				}
				return &Patch{Message: fmt.Sprintf("Your experience has only %d bullet point(s).", n)}
			},
			Samples: func(c *document.Context) []domain.Evidence {
				lines := c.LinesIn(domain.RegionExperience)
				refs := make([]document.LineRef, 0, sampleSize)
				for _, l := range lines {
					refs = append(refs, document.LineRef{Line: l.LineNumber, Text: l.Text})
				}
				return lineEvidence(limitRefs(refs, sampleSize), "experience line")
			},
		},
		{
			ID:          "bullets_too_long",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryStructure,
			ScoreDelta:  -2,
			Title:       "Bullets are too long",
			Message:     "Some bullet points are longer than a reviewer will read.",
			Explanation: fmt.Sprintf("Bullets over %d words read as paragraphs.", longBulletWords),
			Why:         "Long bullets dilute the achievement they describe.",
			Fix:         "Keep each bullet to one or two lines; split compound achievements.",
			Evaluate: func(c *document.Context) *Patch {
				long := filterBullets(c.Bullets, func(b domain.Bullet) bool { return b.WordCount > longBulletWords })
				if len(long) < 2 {
					return nil
				}
				return withEvidence(bulletEvidence(limitBullets(long, sampleSize), "long bullet"))
			},
		},
		{
			ID:          "bullets_too_short",
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryStructure,
			ScoreDelta:  -1,
			Title:       "Bullets are too short",
			Message:     "Many bullet points are only a few words long.",
			Explanation: "Fragments such as \"Java\" or \"Team work\" say nothing about impact.",
			Why:         "Reviewers need context: what you did, how and with what result.",
			Fix:         "Expand fragments into achievements with an action and a result.",
			Evaluate: func(c *document.Context) *Patch {
				sample := c.BulletSample()
				if len(sample) < c.Tuning.Document.MinBulletSample {
					return nil
				}
				short := filterBullets(sample, func(b domain.Bullet) bool { return b.WordCount < shortBulletWords })
				if float64(len(short)) < 0.3*float64(len(sample)) {
					return nil
				}
				return withEvidence(bulletEvidence(limitBullets(short, sampleSize), "short bullet"))
			},
		},
		{
			ID:          "duplicate_lines",
			Severity:    domain.SeverityWarn,
			Category:    domain.CategoryStructure,
			ScoreDelta:  -2,
			Title:       "Repeated lines",
			Message:     "Some lines appear more than once.",
			Explanation: "Repetition often comes from copy and paste between roles or from headers repeated on every page.",
			Why:         "Duplicates waste space and look careless.",
			Fix:         "Remove repeated lines or reword them for each role.",
			Evaluate: func(c *document.Context) *Patch {
				if len(c.DuplicateLines) == 0 {
					return nil
				}
				return withEvidence(lineEvidence(limitRefs(c.DuplicateLines, sampleSize), "repeated line"))
			},
		},
	}
}

// suggestion fires when a section was inferred from content without a heading.
func suggestion(section domain.Section) EvaluateFunc {
	return func(c *document.Context) *Patch {
		for _, s := range c.HeadingSuggestions {
			if s.Section == section {
				return withEvidence([]domain.Evidence{{
					Snippet: s.Text,
					Line:    s.Line,
					Reason:  fmt.Sprintf("reads like a %s section", section),
					Source:  "line",
				}})
			}
		}
		return nil
	}
}
