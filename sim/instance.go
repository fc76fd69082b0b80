// sim/instance.go
package sim

import (
	"fmt"
	"math/rand"
)

// ProblemInstance holds the ground truth of one bandit problem: K arms,
// each with a fixed true mean and true variance. It is generated once per
// experiment batch and shared read-only by every trial and policy.
type ProblemInstance struct {
	Means     []float64 // true arm means, drawn from U[0,1)
	Variances []float64 // true arm variances, drawn from U[vmin,vmax), all > 0
	BestArm   int       // index of the arm with the highest true mean (first on ties)
}

// NewProblemInstance samples a fresh problem instance: K means uniform on
// [0,1), K variances uniform on [r.Min, r.Max). The best arm is the first
// index attaining the maximal mean, which keeps tie-breaking deterministic.
func NewProblemInstance(arms int, r VarianceRange, rng *rand.Rand) (*ProblemInstance, error) {
	if arms <= 0 {
		return nil, fmt.Errorf("arm count must be positive, got %d", arms)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	inst := &ProblemInstance{
		Means:     make([]float64, arms),
		Variances: make([]float64, arms),
	}
	for a := 0; a < arms; a++ {
		inst.Means[a] = rng.Float64()
		inst.Variances[a] = r.Min + rng.Float64()*(r.Max-r.Min)
	}
	for a := 1; a < arms; a++ {
		if inst.Means[a] > inst.Means[inst.BestArm] {
			inst.BestArm = a
		}
	}
	return inst, nil
}

// Arms returns the number of arms K.
func (p *ProblemInstance) Arms() int {
	return len(p.Means)
}

// Gap returns the instantaneous regret of pulling the given arm: the
// difference between the best arm's true mean and the arm's true mean.
func (p *ProblemInstance) Gap(arm int) float64 {
	return p.Means[p.BestArm] - p.Means[arm]
}

// ArmRecord is one row of the instance table handed to the table sink.
type ArmRecord struct {
	Arm      int
	Mean     float64
	Variance float64
}

// Records returns the instance as table rows, arm index ascending.
func (p *ProblemInstance) Records() []ArmRecord {
	records := make([]ArmRecord, p.Arms())
	for a := range records {
		records[a] = ArmRecord{Arm: a, Mean: p.Means[a], Variance: p.Variances[a]}
	}
	return records
}
