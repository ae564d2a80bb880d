package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

const strongCV = `Jane Doe
Senior Software Engineer
jane.doe@example.com | +1 415 555 0134 | linkedin.com/in/janedoe
Summary
Senior backend engineer with 8 years of experience building Go and Python services for fintech platforms.
Experience
Senior Software Engineer, Acme Corp, Jan 2020 - Present
- Built a payments API in Golang serving 2M requests per day across 12 services.
- Reduced p99 latency by 40% by introducing Redis caching.
- Led a team of 5 engineers through a migration to Kubernetes on AWS.
- Automated CI/CD pipelines with GitHub Actions, cutting release time by 60%.
Software Engineer, Beta Labs, Mar 2017 - Dec 2019
- Designed PostgreSQL schemas and REST APIs for 300k users.
- Improved unit test coverage from 40% to 85% with Go testing tools.
- Mentored 3 junior developers in code reviews.
Education
BSc Computer Science, State University, Sep 2013 - Jun 2017
Skills
Go, Python, SQL, Docker, Kubernetes, AWS, Git, Prometheus`

func evaluate(t *testing.T, text string) []domain.Issue {
	t.Helper()
	return NewEngine(nil).Evaluate(buildCtx(t, text, "software_engineer"))
}

func TestRules_StrongCV(t *testing.T) {
	issues := evaluate(t, strongCV)
	for _, id := range []string{
		"missing_email", "missing_phone", "missing_linkedin", "too_short_for_ats", "likely_not_cv",
		"no_experience_section", "no_projects_and_no_experience", "no_education_section", "no_skills_section",
		"no_summary", "few_bullets", "no_metrics_at_all", "low_numeric_density", "missing_outcome_language",
		"weak_action_verbs", "inconsistent_date_format", "missing_dates", "stack_contradiction",
		"merged_bullets_detected", "low_extraction_quality", "first_person_pronouns", "duplicate_lines",
	} {
		assert.Nil(t, find(issues, id), id)
	}
}

func TestRules_MissingEmail(t *testing.T) {
	text := strings.Replace(strongCV, "jane.doe@example.com", "jane.doe at example dot com", 1)
	issues := evaluate(t, text)

	is := find(issues, "missing_email")
	require.NotNil(t, is)
	assert.Equal(t, domain.SeverityCritical, is.Severity)
	assert.Equal(t, domain.CategoryATS, is.Category)
	assert.Equal(t, -8.0, is.ScoreDelta)
	assert.NotEmpty(t, is.Evidence)
	assert.Equal(t, domain.SeverityCritical, issues[0].Severity)
}

func TestRules_InconsistentDateFormat(t *testing.T) {
	text := strings.NewReplacer(
		"Mar 2017 - Dec 2019", "03/2017 - 12/2019",
		"Sep 2013 - Jun 2017", "2013 - 2017",
	).Replace(strongCV)
	is := find(evaluate(t, text), "inconsistent_date_format")
	require.NotNil(t, is)
	assert.Equal(t, domain.SeverityWarn, is.Severity)
	require.Len(t, is.Evidence, 3)
	assert.Contains(t, is.Message, "3 date formats")
	for _, ev := range is.Evidence {
		assert.Equal(t, 0.95, ev.Confidence)
		assert.Positive(t, ev.Line)
	}
}

func TestRules_OutcomeLanguageDowngradedOnSmallSample(t *testing.T) {
	text := "Experience\nEngineer, Acme, Jan 2020 - Present\n" +
		"- Built internal dashboards for support staff.\n" +
		"- Wrote documentation for the billing service.\n" +
		"- Maintained the legacy reporting jobs."
	is := find(evaluate(t, text), "missing_outcome_language")
	require.NotNil(t, is)
	assert.Equal(t, domain.SeverityInfo, is.Severity)
	assert.Equal(t, -1.0, is.ScoreDelta)
	assert.Len(t, is.Evidence, 2)
}

func TestRules_ProjectsWithoutExperience(t *testing.T) {
	text := "Projects\n- Built a CLI in Go for 300 users.\n- Wrote a blog engine."
	issues := evaluate(t, text)
	assert.NotNil(t, find(issues, "no_experience_section"))
	assert.Nil(t, find(issues, "no_projects_and_no_experience"))
}

func TestRules_StackContradiction(t *testing.T) {
	text := "Experience\nFull-stack Developer, Acme, Jan 2021 - Present\n" +
		"- Built a MERN application for online ordering.\n" +
		"- Developed Angular dashboards for store managers."
	is := find(evaluate(t, text), "stack_contradiction")
	require.NotNil(t, is)
	require.Len(t, is.Evidence, 1)
	assert.Equal(t, 3, is.Evidence[0].LineStart)
	assert.Equal(t, 4, is.Evidence[0].LineEnd)
	assert.Equal(t, 0.7, is.Evidence[0].Confidence)
}

func TestRules_MergedBullets(t *testing.T) {
	text := "Experience\nEngineer, Acme, Jan 2020 - Present\n" +
		"- Built the billing API • Led a team of 4 engineers • Reduced costs by 20%"
	issues := evaluate(t, text)
	is := find(issues, "merged_bullets_detected")
	require.NotNil(t, is)
	assert.Equal(t, 3, is.Evidence[0].Line)
	assert.Equal(t, 0.9, is.Evidence[0].Confidence)
}

func TestRules_Pronouns(t *testing.T) {
	text := "Experience\n- I built the payments service.\n- My team shipped a new app.\n- Delivered features."
	is := find(evaluate(t, text), "first_person_pronouns")
	require.NotNil(t, is)
	assert.Len(t, is.Evidence, 2)
}

func TestRegistryHelpers(t *testing.T) {
	assert.True(t, IsKeywordMissing(MissingRoleKeywords))
	assert.True(t, IsKeywordMissing(MissingCriticalKeywords))
	assert.False(t, IsKeywordMissing("missing_email"))
	assert.True(t, IsExtractionSensitive("missing_outcome_language"))
	assert.False(t, IsExtractionSensitive("missing_email"))
	assert.Equal(t, domain.CategoryConsistency, CategoryOf("inconsistent_date_format"))

	r, ok := Lookup("missing_email")
	require.True(t, ok)
	assert.Equal(t, -8.0, r.ScoreDelta)
	_, ok = Lookup("nope")
	assert.False(t, ok)
}
