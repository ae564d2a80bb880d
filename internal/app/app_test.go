package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuildAnalyzer_Defaults(t *testing.T) {
	an, err := BuildAnalyzer(config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "software_engineer", an.Registry().DefaultRoleID())
	assert.Equal(t, config.DefaultTuning(), an.Tuning())
}

func TestBuildAnalyzer_Files(t *testing.T) {
	tuning := writeFile(t, "tuning.yaml", "penalty:\n  medium: 0.6\n")
	packs := writeFile(t, "packs.yaml", `packs:
  - id: data_engineer
    label: Data Engineer
    keywords:
      - key: spark
        label: Spark
        tier: critical
        patterns: ['\bspark\b']
`)
	an, err := BuildAnalyzer(config.Config{TuningFile: tuning, KeywordPacksFile: packs, DefaultRole: "data_engineer"})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, an.Tuning().Penalty.Medium, 1e-9)
	assert.Equal(t, "data_engineer", an.Registry().DefaultRoleID())

	rep := an.Analyze("Ran Spark pipelines", "")
	assert.Equal(t, "data_engineer", rep.KeywordCoverage.Role)
}

func TestBuildAnalyzer_Errors(t *testing.T) {
	_, err := BuildAnalyzer(config.Config{TuningFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=app.BuildAnalyzer")

	_, err = BuildAnalyzer(config.Config{KeywordPacksFile: writeFile(t, "p.yaml", "packs: []\n")})
	require.Error(t, err)

	_, err = BuildAnalyzer(config.Config{DefaultRole: "astronaut"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestNewRedisClientAndLimiter(t *testing.T) {
	rdb, err := NewRedisClient(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, rdb)
	assert.Nil(t, NewLimiter(config.Config{RateLimitPerMin: 10}, nil))

	_, err = NewRedisClient(config.Config{RedisURL: "://bad"})
	require.Error(t, err)

	rdb, err = NewRedisClient(config.Config{RedisURL: "redis://localhost:6379/0"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	assert.NotNil(t, NewLimiter(config.Config{RateLimitPerMin: 10}, rdb))
	assert.Nil(t, NewLimiter(config.Config{}, rdb))
}
