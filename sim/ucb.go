// sim/ucb.go
package sim

import "math"

// Policy names as they appear in traces, logs, CSV headers and plot legends.
const (
	PolicyStandard        = "ucb"
	PolicyKnownVariance   = "varucb-known"
	PolicyUnknownVariance = "varucb-unknown"
)

// correctionFloor is the clamp for the unknown-variance shrinkage
// correction. The correction 1 - 2*sqrt(2*ln(T)/n) is negative for small n
// and only approaches 1 as n grows; clamping keeps the index denominator
// strictly positive. Numeric-stability policy, never an error.
const correctionFloor = 1e-6

// === Standard UCB ===

// StandardUCB is the variance-agnostic baseline: a fixed exploration width
// sqrt(4*ln(T)/n) regardless of true or estimated reward variance.
type StandardUCB struct {
	armStats
}

// NewStandardUCB creates a zeroed standard-UCB policy for the given arm count.
func NewStandardUCB(arms int) *StandardUCB {
	return &StandardUCB{armStats: newArmStats(arms)}
}

func (p *StandardUCB) Name() string { return PolicyStandard }

func (p *StandardUCB) Index(a int, lnT float64) float64 {
	return p.means[a] + math.Sqrt(4*lnT/float64(p.pulls[a]))
}

func (p *StandardUCB) Observe(a int, reward float64) {
	p.observe(a, reward)
}

// === Known-variance UCB ===

// KnownVarianceUCB scales its exploration width by each arm's TRUE
// variance: sqrt(4*variance[a]*ln(T)/n). An oracle baseline — the true
// variances are never available in practice, but it bounds the regret
// achievable when they are.
type KnownVarianceUCB struct {
	armStats
	variances []float64
}

// NewKnownVarianceUCB creates a zeroed known-variance policy reading the
// instance's true arm variances.
func NewKnownVarianceUCB(inst *ProblemInstance) *KnownVarianceUCB {
	return &KnownVarianceUCB{
		armStats:  newArmStats(inst.Arms()),
		variances: inst.Variances,
	}
}

func (p *KnownVarianceUCB) Name() string { return PolicyKnownVariance }

func (p *KnownVarianceUCB) Index(a int, lnT float64) float64 {
	return p.means[a] + math.Sqrt(4*p.variances[a]*lnT/float64(p.pulls[a]))
}

func (p *KnownVarianceUCB) Observe(a int, reward float64) {
	p.observe(a, reward)
}

// === Unknown-variance UCB ===

// UnknownVarianceUCB estimates each arm's variance online (Welford) and
// widens its exploration term by a shrinkage correction accounting for the
// slack of using a sample variance instead of the truth:
//
//	c     = max(1 - 2*sqrt(2*ln(T)/n), correctionFloor)
//	index = mean[a] + sqrt(variance[a]) * sqrt(4*ln(T) / (n*c))
type UnknownVarianceUCB struct {
	welfordStats
}

// NewUnknownVarianceUCB creates a zeroed unknown-variance policy for the
// given arm count, with the variance prior set to 1.
func NewUnknownVarianceUCB(arms int) *UnknownVarianceUCB {
	return &UnknownVarianceUCB{welfordStats: newWelfordStats(arms)}
}

func (p *UnknownVarianceUCB) Name() string { return PolicyUnknownVariance }

func (p *UnknownVarianceUCB) Index(a int, lnT float64) float64 {
	n := float64(p.pulls[a])
	c := 1 - 2*math.Sqrt(2*lnT/n)
	if c < correctionFloor {
		c = correctionFloor
	}
	return p.means[a] + math.Sqrt(p.variances[a])*math.Sqrt(4*lnT/(n*c))
}

func (p *UnknownVarianceUCB) Observe(a int, reward float64) {
	p.observe(a, reward)
}

// Variance returns the current variance estimate for arm a. Exposed for
// inspection; the trial loop itself only goes through Index/Observe.
func (p *UnknownVarianceUCB) Variance(a int) float64 {
	return p.variances[a]
}

// === Policy set ===

// PolicyFactory builds a fresh, independent Policy per trial.
type PolicyFactory struct {
	Name string
	New  func() Policy
}

// DefaultPolicies returns the three compared policies in their canonical
// order: known-variance, unknown-variance, standard.
func DefaultPolicies(inst *ProblemInstance) []PolicyFactory {
	arms := inst.Arms()
	return []PolicyFactory{
		{Name: PolicyKnownVariance, New: func() Policy { return NewKnownVarianceUCB(inst) }},
		{Name: PolicyUnknownVariance, New: func() Policy { return NewUnknownVarianceUCB(arms) }},
		{Name: PolicyStandard, New: func() Policy { return NewStandardUCB(arms) }},
	}
}
