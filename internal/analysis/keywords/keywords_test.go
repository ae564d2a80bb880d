package keywords

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

func line(rank int, text string, region domain.Region) domain.LineEntry {
	return domain.LineEntry{Rank: rank, LineNumber: rank, Text: text, Region: region, Section: domain.SectionOther}
}

func TestRegistry_Normalize(t *testing.T) {
	r := DefaultRegistry()
	cases := map[string]string{
		"":                  "software_engineer",
		"unknown-role":      "software_engineer",
		"general":           "software_engineer",
		"  Angular ":        "frontend_angular",
		"react":             "frontend_react",
		"Frontend-React":    "frontend_react",
		"nodejs":            "backend_node",
		"software engineer": "software_engineer",
	}
	for in, want := range cases {
		assert.Equal(t, want, r.Normalize(in), "input %q", in)
	}
}

func TestRegistry_RolesSortedAndCompiled(t *testing.T) {
	roles := DefaultRegistry().Roles()
	require.Len(t, roles, 4)
	assert.Equal(t, "backend_node", roles[0].ID)
	for _, p := range roles {
		assert.Equal(t, len(p.Keywords), len(p.matchers), p.ID)
		assert.NotEmpty(t, p.Label)
	}
}

func TestNewBuiltinRegistry_DefaultRole(t *testing.T) {
	r, err := NewBuiltinRegistry("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRole, r.DefaultRoleID())

	r, err = NewBuiltinRegistry("React")
	require.NoError(t, err)
	assert.Equal(t, "frontend_react", r.DefaultRoleID())
	assert.Equal(t, "frontend_react", r.Normalize("cobol"))

	_, err = NewBuiltinRegistry("cobol")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry("x", Pack{ID: "y", Keywords: []domain.KeywordDefinition{{Key: "a", Label: "A", Tier: domain.TierNice, Patterns: []string{"a"}}}})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = NewRegistry("x", Pack{ID: "x", Keywords: []domain.KeywordDefinition{{Key: "a", Label: "A", Tier: "bogus", Patterns: []string{"a"}}}})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = NewRegistry("x", Pack{ID: "x", Keywords: []domain.KeywordDefinition{{Key: "a", Label: "A", Tier: domain.TierNice, Patterns: []string{"("}}}})
	require.Error(t, err)
}

func testPack(t *testing.T) Pack {
	t.Helper()
	r, err := NewRegistry("demo", Pack{
		ID:    "demo",
		Label: "Demo",
		Keywords: []domain.KeywordDefinition{
			{Key: "go", Label: "Go", Tier: domain.TierCritical, Patterns: []string{`\bgolang\b`}},
			{Key: "k8s", Label: "Kubernetes", Tier: domain.TierStrong, Patterns: []string{`\bkubernetes\b`}},
			{Key: "csharp", Label: "C#", Tier: domain.TierNice, Synonyms: []string{"c#"}},
		},
	})
	require.NoError(t, err)
	return r.Pack("demo")
}

func TestAnalyze_SkillsOnlyWeighsLessThanExperience(t *testing.T) {
	pack := testPack(t)
	tun := config.DefaultTuning().Keywords

	inExperience := []domain.LineEntry{line(1, "Built services in Golang", domain.RegionExperience)}
	inSkills := []domain.LineEntry{line(1, "Languages: Golang", domain.RegionSkills)}

	exp := Analyze("Built services in Golang", inExperience, pack, tun)
	sk := Analyze("Languages: Golang", inSkills, pack, tun)

	assert.Equal(t, exp.CoveragePct, sk.CoveragePct)
	assert.Less(t, sk.WeightedCoveragePct, exp.WeightedCoveragePct)
	assert.Equal(t, []string{"Go"}, sk.SkillsOnly)
	assert.Empty(t, exp.SkillsOnly)
	assert.Equal(t, 33, exp.WeightedCoveragePct)
	assert.Equal(t, 13, sk.WeightedCoveragePct)
}

func TestAnalyze_MissingByTierAndTotals(t *testing.T) {
	pack := testPack(t)
	lines := []domain.LineEntry{line(1, "Wrote C# tools", domain.RegionOther)}
	cov := Analyze("Wrote C# tools", lines, pack, config.DefaultTuning().Keywords)

	assert.Equal(t, "demo", cov.Role)
	assert.Equal(t, 3, cov.Total)
	assert.Equal(t, 1, cov.CriticalTotal)
	assert.Equal(t, 1, cov.StrongTotal)
	assert.Equal(t, []string{"C#"}, cov.Found)
	assert.Equal(t, []string{"Go", "Kubernetes"}, cov.Missing)
	assert.Equal(t, []string{"Go"}, cov.MissingCritical)
	assert.Equal(t, []string{"Kubernetes"}, cov.MissingStrong)
	assert.Empty(t, cov.MissingByTier[domain.TierNice])
	// Found outside experience and skills: counted for coverage, not weight.
	assert.Equal(t, 33, cov.CoveragePct)
	assert.Equal(t, 0, cov.WeightedCoveragePct)
}

func TestAnalyze_StuffingSuspected(t *testing.T) {
	pack := DefaultRegistry().Pack("software_engineer")
	skills := "Python, SQL, Docker, AWS, Git, Agile, REST APIs, Prometheus, microservices, unit tests"
	lines := []domain.LineEntry{line(1, skills, domain.RegionSkills)}
	cov := Analyze(skills, lines, pack, config.DefaultTuning().Keywords)

	assert.GreaterOrEqual(t, cov.FoundInSkillsCount, 8)
	assert.True(t, cov.KeywordStuffingSuspected)
}

func TestAnalyze_StuffingEvenWhenBackedByExperience(t *testing.T) {
	pack := DefaultRegistry().Pack("software_engineer")
	skills := "Python, SQL, Docker, AWS, Git, Agile, REST APIs, Prometheus, microservices, unit tests"
	exp := "Built Python REST APIs on AWS with Docker, SQL, Git, Agile sprints, Prometheus, microservices and unit tests"
	lines := []domain.LineEntry{
		line(1, exp, domain.RegionExperience),
		line(2, skills, domain.RegionSkills),
	}
	cov := Analyze(exp+"\n"+skills, lines, pack, config.DefaultTuning().Keywords)
	assert.True(t, cov.KeywordStuffingSuspected)
	assert.Empty(t, cov.SkillsOnly)

	tun := config.DefaultTuning().Keywords
	tun.StuffingMinSkillsOnly = 3
	cov = Analyze(exp+"\n"+skills, lines, pack, tun)
	assert.False(t, cov.KeywordStuffingSuspected, "opt-in skills-only guard")
}

func TestAnalyze_StuffingByDensityAlone(t *testing.T) {
	pack := DefaultRegistry().Pack("software_engineer")
	filler := "happy to pair with colleagues on hard problems every week. "
	cases := []struct {
		name   string
		skills string
		want   bool
	}{
		{"dense matches", "Python, Git, " + filler, true},
		{"sparse matches", "Git, " + strings.Repeat(filler, 8), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines := []domain.LineEntry{line(1, tc.skills, domain.RegionSkills)}
			cov := Analyze(tc.skills, lines, pack, config.DefaultTuning().Keywords)
			assert.Less(t, cov.FoundInSkillsCount, 8)
			assert.Equal(t, tc.want, cov.KeywordStuffingSuspected)
		})
	}
}

func TestAnalyze_StuffingSkillsBlockLengthBoundary(t *testing.T) {
	pack := DefaultRegistry().Pack("software_engineer")
	tun := config.DefaultTuning().Keywords
	tun.StuffingDensity = 1
	base := "Python, SQL, Docker, AWS, Git, Agile, REST APIs, Prometheus, microservices, unit tests "

	for _, n := range []int{340, 341} {
		skills := base + strings.Repeat("x", n-len(base))
		require.Len(t, skills, n)
		lines := []domain.LineEntry{line(1, skills, domain.RegionSkills)}
		cov := Analyze(skills, lines, pack, tun)
		assert.Equal(t, 10, cov.FoundInSkillsCount)
		assert.Equal(t, n <= tun.StuffingMaxSkillsChars, cov.KeywordStuffingSuspected, "length %d", n)
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	pack := DefaultRegistry().Pack("")
	cov := Analyze("", nil, pack, config.DefaultTuning().Keywords)
	assert.Equal(t, 0, cov.CoveragePct)
	assert.Equal(t, cov.Total, len(cov.Missing))
	assert.NotNil(t, cov.Found)
	assert.False(t, cov.KeywordStuffingSuspected)
}

func TestLoadPacks_OverridesRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packs.yaml")
	content := `packs:
  - id: data_engineer
    label: Data Engineer
    aliases: [data]
    keywords:
      - key: spark
        label: Spark
        tier: critical
        patterns: ['\bspark\b']
      - key: airflow
        label: Airflow
        tier: strong
        synonyms: [airflow]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	packs, err := LoadPacks(path)
	require.NoError(t, err)
	require.Len(t, packs, 1)

	r, err := DefaultRegistry().With(packs...)
	require.NoError(t, err)
	assert.Equal(t, "data_engineer", r.Normalize("data"))
	assert.Len(t, r.Roles(), 5)

	cov := Analyze("Ran Spark jobs", []domain.LineEntry{line(1, "Ran Spark jobs", domain.RegionExperience)}, r.Pack("data"), config.DefaultTuning().Keywords)
	assert.Equal(t, []string{"Spark"}, cov.Found)
}

func TestLoadPacks_Errors(t *testing.T) {
	_, err := LoadPacks(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packs: []\n"), 0o600))
	_, err = LoadPacks(path)
	require.Error(t, err)
}
