// sim/reward.go
package sim

import (
	"math"
	"math/rand"
)

// RewardSource draws one reward for the given arm. The core only ever sees
// this interface; tests inject deterministic sources instead of Gaussian
// noise.
type RewardSource interface {
	// Draw returns a reward sample for arm a.
	Draw(a int) float64
}

// GaussianRewardSource draws rewards from each arm's true Gaussian
// N(mean, variance), consuming one stream of a PartitionedRNG.
type GaussianRewardSource struct {
	inst *ProblemInstance
	rng  *rand.Rand
}

// NewGaussianRewardSource creates a reward source over the instance's true
// arm distributions.
func NewGaussianRewardSource(inst *ProblemInstance, rng *rand.Rand) *GaussianRewardSource {
	return &GaussianRewardSource{inst: inst, rng: rng}
}

func (s *GaussianRewardSource) Draw(a int) float64 {
	return s.rng.NormFloat64()*math.Sqrt(s.inst.Variances[a]) + s.inst.Means[a]
}
