package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/varucb-sim/varucb-sim/sim"
)

// setFlags installs flag values for one test and restores the previous
// values afterwards.
func setFlags(t *testing.T, a int, v string, cfg string) {
	t.Helper()
	prevArms, prevVariance, prevConfig := arms, variance, configPath
	arms, variance, configPath = a, v, cfg
	t.Cleanup(func() {
		arms, variance, configPath = prevArms, prevVariance, prevConfig
	})
}

func TestResolveConfig_FromFlags(t *testing.T) {
	setFlags(t, 10, "medium", "")

	config, label, err := resolveConfig()
	require.NoError(t, err)

	assert.Equal(t, "medium", label)
	assert.Equal(t, 10, config.Arms)
	assert.Equal(t, sim.VarianceRange{Min: 5, Max: 20}, config.Variances)
	assert.Equal(t, 1000000, config.Horizon)
	assert.Equal(t, 50, config.Trials)
	assert.Equal(t, int64(42), config.Seed)
}

func TestResolveConfig_RejectsBadFlags(t *testing.T) {
	tests := []struct {
		name     string
		arms     int
		variance string
	}{
		{"missing arms", 0, "low"},
		{"missing variance", 5, ""},
		{"unknown variance", 5, "extreme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setFlags(t, tt.arms, tt.variance, "")
			if _, _, err := resolveConfig(); err == nil {
				t.Error("resolveConfig succeeded, want error")
			}
		})
	}
}

func TestResolveConfig_FromSpecFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	content := "arms: 3\nvariance: low\nhorizon: 500\ntrials: 5\nseed: 9\noutput_dir: /tmp/varucb-out\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	prevOutput := outputDir
	t.Cleanup(func() { outputDir = prevOutput })
	setFlags(t, 0, "", path)

	config, label, err := resolveConfig()
	require.NoError(t, err)

	assert.Equal(t, "low", label)
	assert.Equal(t, 3, config.Arms)
	assert.Equal(t, 500, config.Horizon)
	assert.Equal(t, 5, config.Trials)
	assert.Equal(t, int64(9), config.Seed)
	assert.Equal(t, "/tmp/varucb-out", outputDir)
}

func TestResolveConfig_CustomRangeLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	content := "arms: 3\nvariance_min: 0.5\nvariance_max: 1.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	setFlags(t, 0, "", path)

	config, label, err := resolveConfig()
	require.NoError(t, err)
	assert.Equal(t, "custom", label)
	assert.Equal(t, sim.VarianceRange{Min: 0.5, Max: 1.5}, config.Variances)
}
