// sim/runner.go
package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ExperimentRunner executes one experiment batch: N independent trials of
// each policy against a shared read-only ProblemInstance, then pointwise
// aggregation of the regret traces.
//
// Every trial owns a fresh zeroed Policy and its own RNG stream, so trials
// never share mutable state. With Parallelism > 1 they run concurrently;
// results are identical either way because all streams derive from the
// master seed by name, not by execution order.
type ExperimentRunner struct {
	config ExperimentConfig
	rng    *PartitionedRNG
}

// NewExperimentRunner creates a runner for a validated config. All
// randomness of the batch derives from config.Seed.
func NewExperimentRunner(config ExperimentConfig) *ExperimentRunner {
	return &ExperimentRunner{
		config: config,
		rng:    NewPartitionedRNG(NewExperimentKey(config.Seed)),
	}
}

// GenerateInstance samples the batch's problem instance from the
// instance-generation RNG stream.
func (r *ExperimentRunner) GenerateInstance() (*ProblemInstance, error) {
	return NewProblemInstance(r.config.Arms, r.config.Variances, r.rng.ForSubsystem(SubsystemInstance))
}

// Run executes all trials of every policy in factories against inst and
// returns one AggregatedRegret per policy, in factory order.
func (r *ExperimentRunner) Run(inst *ProblemInstance, factories []PolicyFactory) ([]AggregatedRegret, error) {
	results := make([]AggregatedRegret, 0, len(factories))
	for _, factory := range factories {
		logrus.Infof("Running %d trials of %s (K=%d, T=%d)",
			r.config.Trials, factory.Name, inst.Arms(), r.config.Horizon)

		traces, err := r.runPolicy(inst, factory)
		if err != nil {
			return nil, err
		}
		agg := aggregateTraces(factory.Name, traces)
		logrus.Debugf("%s: final mean regret %.2f", factory.Name, agg.Mean[len(agg.Mean)-1])
		results = append(results, agg)
	}
	return results, nil
}

// runPolicy fills the policy's 2-D trace buffer, one row per trial.
// Aggregation only happens after every trial has completed; the errgroup
// wait is the barrier.
func (r *ExperimentRunner) runPolicy(inst *ProblemInstance, factory PolicyFactory) ([]RegretTrace, error) {
	traces := make([]RegretTrace, r.config.Trials)

	parallelism := r.config.Parallelism
	if parallelism <= 1 {
		for i := 0; i < r.config.Trials; i++ {
			traces[i] = r.runOneTrial(inst, factory, r.rng.ForTrial(factory.Name, i))
		}
		return traces, nil
	}

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i := 0; i < r.config.Trials; i++ {
		i := i
		// Streams must be derived on this goroutine; PartitionedRNG is not
		// thread-safe. Each worker then consumes its stream exclusively.
		rng := r.rng.ForTrial(factory.Name, i)
		g.Go(func() error {
			traces[i] = r.runOneTrial(inst, factory, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return traces, nil
}

func (r *ExperimentRunner) runOneTrial(inst *ProblemInstance, factory PolicyFactory, rng *rand.Rand) RegretTrace {
	src := NewGaussianRewardSource(inst, rng)
	return RunTrial(inst, factory.New(), r.config.Horizon, src)
}
