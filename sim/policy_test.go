package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed reward sequence, ignoring the arm.
type scriptedSource struct {
	rewards []float64
	next    int
}

func (s *scriptedSource) Draw(a int) float64 {
	r := s.rewards[s.next%len(s.rewards)]
	s.next++
	return r
}

// recordingSource wraps another source and records which arms were drawn.
type recordingSource struct {
	inner RewardSource
	arms  []int
}

func (s *recordingSource) Draw(a int) float64 {
	s.arms = append(s.arms, a)
	return s.inner.Draw(a)
}

func testInstance() *ProblemInstance {
	return &ProblemInstance{
		Means:     []float64{0.2, 0.9, 0.5},
		Variances: []float64{2, 1, 3},
		BestArm:   1,
	}
}

func TestRunTrial_BootstrapPullsEveryArmFirst(t *testing.T) {
	// GIVEN K=3 arms with no pulls, for every policy
	inst := testInstance()
	for _, factory := range DefaultPolicies(inst) {
		t.Run(factory.Name, func(t *testing.T) {
			src := &recordingSource{inner: &scriptedSource{rewards: []float64{0.4, 0.6, 0.5, 0.3}}}

			RunTrial(inst, factory.New(), 3, src)

			// THEN the first K rounds visit arms 0, 1, 2 in index order
			require.Equal(t, []int{0, 1, 2}, src.arms)
		})
	}
}

func TestRunTrial_RegretStartsAtZeroAndIsMonotone(t *testing.T) {
	inst := testInstance()
	rng := rand.New(rand.NewSource(99))

	for _, factory := range DefaultPolicies(inst) {
		t.Run(factory.Name, func(t *testing.T) {
			src := NewGaussianRewardSource(inst, rng)
			trace := RunTrial(inst, factory.New(), 500, src)

			require.Len(t, trace, 501)
			assert.Zero(t, trace[0])
			for i := 1; i < len(trace); i++ {
				if trace[i] < trace[i-1] {
					t.Fatalf("regret decreased at round %d: %g -> %g", i, trace[i-1], trace[i])
				}
			}
		})
	}
}

func TestRunTrial_IdenticalMeansGiveZeroRegret(t *testing.T) {
	// Regret depends only on true means, so with identical means every
	// choice is optimal and the trace is exactly zero pointwise.
	inst := &ProblemInstance{
		Means:     []float64{0.5, 0.5, 0.5, 0.5},
		Variances: []float64{1, 2, 3, 4},
	}
	rng := rand.New(rand.NewSource(7))

	for _, factory := range DefaultPolicies(inst) {
		t.Run(factory.Name, func(t *testing.T) {
			src := NewGaussianRewardSource(inst, rng)
			trace := RunTrial(inst, factory.New(), 200, src)
			for i, v := range trace {
				if v != 0 {
					t.Fatalf("regret at round %d = %g, want exactly 0", i, v)
				}
			}
		})
	}
}

func TestRunTrial_StableArgmaxPrefersLowestArm(t *testing.T) {
	// GIVEN two arms whose statistics stay identical (same scripted reward
	// for every pull), the UCB indices tie after each bootstrap pair
	inst := &ProblemInstance{
		Means:     []float64{0.5, 0.5},
		Variances: []float64{1, 1},
	}
	src := &recordingSource{inner: &scriptedSource{rewards: []float64{0.5}}}

	RunTrial(inst, NewStandardUCB(2), 6, src)

	// THEN after the bootstrap (0, 1) the tie resolves to arm 0 until its
	// extra pull count lowers its index, alternating deterministically
	require.Equal(t, []int{0, 1, 0, 1, 0, 1}, src.arms)
}

func TestArmStats_IncrementalMean(t *testing.T) {
	s := newArmStats(2)
	rewards := []float64{2, 4, 9}
	for _, r := range rewards {
		s.observe(1, r)
	}

	assert.Equal(t, 0, s.Pulls(0))
	assert.Equal(t, 3, s.Pulls(1))
	assert.InDelta(t, 5.0, s.means[1], 1e-12)
	assert.Zero(t, s.means[0])
}
