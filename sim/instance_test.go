package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblemInstance_SamplesWithinRanges(t *testing.T) {
	// GIVEN a 10-arm instance over the medium regime
	rng := rand.New(rand.NewSource(42))
	inst, err := NewProblemInstance(10, VarianceRegimes["medium"], rng)
	require.NoError(t, err)

	// THEN the invariant holds: K means, K strictly positive variances
	require.Equal(t, 10, inst.Arms())
	require.Len(t, inst.Variances, 10)

	for a := 0; a < inst.Arms(); a++ {
		assert.GreaterOrEqual(t, inst.Means[a], 0.0)
		assert.Less(t, inst.Means[a], 1.0)
		assert.GreaterOrEqual(t, inst.Variances[a], 5.0)
		assert.Less(t, inst.Variances[a], 20.0)
	}

	// THEN the best arm attains the maximal mean
	for a := 0; a < inst.Arms(); a++ {
		assert.GreaterOrEqual(t, inst.Means[inst.BestArm], inst.Means[a])
	}
}

func TestNewProblemInstance_ConfigErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		arms   int
		vrange VarianceRange
	}{
		{"zero arms", 0, VarianceRange{Min: 1, Max: 5}},
		{"negative arms", -3, VarianceRange{Min: 1, Max: 5}},
		{"inverted range", 4, VarianceRange{Min: 5, Max: 1}},
		{"empty range", 4, VarianceRange{Min: 2, Max: 2}},
		{"non-positive min", 4, VarianceRange{Min: 0, Max: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProblemInstance(tt.arms, tt.vrange, rng)
			if err == nil {
				t.Errorf("NewProblemInstance(%d, %+v) succeeded, want error", tt.arms, tt.vrange)
			}
		})
	}
}

func TestProblemInstance_BestArmTieBreak(t *testing.T) {
	// Exact ties resolve to the first-occurring maximum
	inst := &ProblemInstance{
		Means:     []float64{0.3, 0.7, 0.7, 0.1},
		Variances: []float64{1, 1, 1, 1},
	}
	for a := 1; a < len(inst.Means); a++ {
		if inst.Means[a] > inst.Means[inst.BestArm] {
			inst.BestArm = a
		}
	}
	assert.Equal(t, 1, inst.BestArm)
}

func TestProblemInstance_GapAndRecords(t *testing.T) {
	inst := &ProblemInstance{
		Means:     []float64{0.2, 0.9, 0.5},
		Variances: []float64{1, 2, 3},
		BestArm:   1,
	}

	assert.InDelta(t, 0.7, inst.Gap(0), 1e-12)
	assert.Zero(t, inst.Gap(1))
	assert.InDelta(t, 0.4, inst.Gap(2), 1e-12)

	records := inst.Records()
	require.Len(t, records, 3)
	for a, rec := range records {
		assert.Equal(t, a, rec.Arm)
		assert.Equal(t, inst.Means[a], rec.Mean)
		assert.Equal(t, inst.Variances[a], rec.Variance)
	}
}
