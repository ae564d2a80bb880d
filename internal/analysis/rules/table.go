package rules

import "github.com/fairyhunter13/cv-feedback/internal/domain"

// Table returns the ordered rule table: ATS, structure, impact, consistency
// and keyword rules.
func Table() []Rule {
	var out []Rule
	out = append(out, atsRules()...)
	out = append(out, structureRules()...)
	out = append(out, impactRules()...)
	out = append(out, consistencyRules()...)
	out = append(out, keywordRules()...)
	return out
}

// extractionSensitive lists the issues whose correctness depends on reliable
// line and bullet structure.
var extractionSensitive = map[string]bool{
	"missing_outcome_language": true,
	"few_bullets":              true,
	"low_numeric_density":      true,
	"no_metrics_at_all":        true,
	MissingRoleKeywords:        true,
	MissingCriticalKeywords:    true,
	"merged_bullets_detected":  true,
}

// IsExtractionSensitive reports whether an issue id is down-weighted under
// poor extraction quality.
func IsExtractionSensitive(id string) bool { return extractionSensitive[id] }

// IsKeywordMissing reports whether an issue id uses the split keyword penalty.
func IsKeywordMissing(id string) bool {
	return id == MissingRoleKeywords || id == MissingCriticalKeywords
}

// Lookup returns the rule with the given id from the default table.
func Lookup(id string) (Rule, bool) {
	for _, r := range Table() {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// CategoryOf returns the category of a rule id, or "" when unknown.
func CategoryOf(id string) domain.Category {
	if r, ok := Lookup(id); ok {
		return r.Category
	}
	return ""
}
