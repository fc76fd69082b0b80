// sim/policy.go
package sim

import "math"

// Policy is one bandit decision process over a single trial. A policy is
// created fresh per trial (zeroed state) and mutated exactly once per
// round by the driver loop in RunTrial.
//
// Index is only ever called for arms with at least one pull: the driver
// handles the zero-pull bootstrap itself by scanning for the lowest
// unvisited arm, so no infinity sentinel exists anywhere in the index math.
type Policy interface {
	// Name identifies the policy in traces, logs and plots.
	Name() string
	// Pulls returns how often arm a has been pulled so far.
	Pulls(a int) int
	// Index returns the upper confidence bound for arm a. Requires
	// Pulls(a) > 0. lnT is ln of the trial horizon, precomputed once.
	Index(a int, lnT float64) float64
	// Observe folds the reward of the latest pull of arm a into the
	// policy's online statistics.
	Observe(a int, reward float64)
}

// === Shared per-arm state ===

// armStats is the online state every UCB variant maintains: pull counts
// and empirical means, updated by incremental averaging.
type armStats struct {
	pulls []int
	means []float64
}

func newArmStats(arms int) armStats {
	return armStats{
		pulls: make([]int, arms),
		means: make([]float64, arms),
	}
}

func (s *armStats) Pulls(a int) int {
	return s.pulls[a]
}

// observe updates count and empirical mean: mean += (reward - mean) / n.
func (s *armStats) observe(a int, reward float64) {
	s.pulls[a]++
	s.means[a] += (reward - s.means[a]) / float64(s.pulls[a])
}

// welfordStats extends armStats with a single-pass (Welford) estimate of
// each arm's reward variance, so no raw reward history is retained.
type welfordStats struct {
	armStats
	m2        []float64 // running sum of squared deviations per arm
	variances []float64 // unbiased sample variance per arm, prior 1
}

func newWelfordStats(arms int) welfordStats {
	s := welfordStats{
		armStats:  newArmStats(arms),
		m2:        make([]float64, arms),
		variances: make([]float64, arms),
	}
	// Prior of 1 until an arm has two samples; the index formula needs a
	// positive variance from the very first non-bootstrap round.
	for a := range s.variances {
		s.variances[a] = 1
	}
	return s
}

// observe runs one Welford step: delta uses the pre-update mean, the M2
// increment uses the post-update mean. The sample variance stays at its
// prior while an arm has fewer than two pulls.
func (s *welfordStats) observe(a int, reward float64) {
	s.pulls[a]++
	n := s.pulls[a]
	delta := reward - s.means[a]
	s.means[a] += delta / float64(n)
	s.m2[a] += delta * (reward - s.means[a])
	if n > 1 {
		s.variances[a] = s.m2[a] / float64(n-1)
	}
}

// === Driver loop ===

// RunTrial plays one policy against one problem instance for horizon
// rounds and returns its cumulative regret trace (length horizon+1,
// regret[0] = 0).
//
// Round structure, identical for every policy:
//  1. select the lowest-index arm with zero pulls, if any (bootstrap);
//     otherwise the arm with the maximal UCB index, first maximum wins
//  2. draw a reward for the selected arm
//  3. fold the reward into the policy's online statistics
//  4. append the true-mean gap of the selected arm to the regret trace
//
// Regret is a function of which arm was chosen, never of the sampled
// reward noise.
func RunTrial(inst *ProblemInstance, p Policy, horizon int, src RewardSource) RegretTrace {
	arms := inst.Arms()
	lnT := math.Log(float64(horizon))
	trace := make(RegretTrace, horizon+1)

	for t := 1; t <= horizon; t++ {
		arm := -1
		for a := 0; a < arms; a++ {
			if p.Pulls(a) == 0 {
				arm = a
				break
			}
		}
		if arm < 0 {
			arm = 0
			best := p.Index(0, lnT)
			for a := 1; a < arms; a++ {
				if idx := p.Index(a, lnT); idx > best {
					arm, best = a, idx
				}
			}
		}

		p.Observe(arm, src.Draw(arm))
		trace[t] = trace[t-1] + inst.Gap(arm)
	}
	return trace
}
