package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTuning(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultTuning_Valid(t *testing.T) {
	tun := DefaultTuning()
	require.NoError(t, tun.Validate())

	c := tun.Categories
	assert.Equal(t, MaxOverall, c.Sum())
	assert.Equal(t, 140, tun.Evidence.MaxSnippetChars)
	assert.Equal(t, 3, tun.Evidence.MaxEntries)
}

func TestLoadTuning_EmptyPath(t *testing.T) {
	tun, err := LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), tun)
}

func TestLoadTuning_PartialOverride(t *testing.T) {
	path := writeTuning(t, `
penalty:
  medium: 0.6
evidence:
  max_entries: 2
document:
  min_bullet_sample: 6
`)
	tun, err := LoadTuning(path)
	require.NoError(t, err)

	assert.Equal(t, 0.6, tun.Penalty.Medium)
	assert.Equal(t, 0.4, tun.Penalty.Low)
	assert.Equal(t, 2, tun.Evidence.MaxEntries)
	assert.Equal(t, 140, tun.Evidence.MaxSnippetChars)
	assert.Equal(t, 6, tun.Document.MinBulletSample)
	assert.Equal(t, DefaultTuning().Categories, tun.Categories)
}

func TestLoadTuning_SmallerBudgetAllowed(t *testing.T) {
	tun, err := LoadTuning(writeTuning(t, "categories:\n  ats: 20\n"))
	require.NoError(t, err)
	assert.Equal(t, 95, tun.Categories.Sum())
}

func TestLoadTuning_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid yaml", "penalty: [", "failed to parse YAML"},
		{"out of range", "penalty:\n  low: 1.5\n", "op=config.Tuning.Validate"},
		{"thresholds inverted", "extraction:\n  high_threshold: 0.4\n", "op=config.Tuning.Validate"},
		{"zero budget", "categories:\n  ats: 0\n", "op=config.Tuning.Validate"},
		{"budgets above 100", "categories:\n  ats: 30\n", "category budgets sum to 105"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTuning(writeTuning(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read tuning file")
}

func TestTuning_LevelLookups(t *testing.T) {
	tun := DefaultTuning()

	assert.Equal(t, 1.0, tun.Penalty.LevelWeight("high"))
	assert.Equal(t, 0.7, tun.Penalty.LevelWeight("medium"))
	assert.Equal(t, 0.4, tun.Penalty.LevelWeight("low"))

	assert.Equal(t, 1.0, tun.Confidence.LevelMultiplier("high"))
	assert.Equal(t, 0.56, tun.Confidence.LevelMultiplier("low"))

	impact, consistency := tun.NonCV.Ceilings("medium")
	assert.Equal(t, 8, impact)
	assert.Equal(t, 5, consistency)
}
