// sim/trace.go
package sim

import "gonum.org/v1/gonum/stat"

// RegretTrace is the cumulative regret of one trial after each round:
// length T+1, index 0 fixed at zero, non-decreasing. Immutable once a
// trial completes.
type RegretTrace []float64

// Final returns the cumulative regret at the end of the horizon.
func (r RegretTrace) Final() float64 {
	return r[len(r)-1]
}

// AggregatedRegret is the pointwise mean and standard deviation of a
// policy's regret traces across all trials of a batch. Both sequences
// have length T+1.
type AggregatedRegret struct {
	Policy string
	Mean   []float64
	Std    []float64
}

// aggregateTraces computes pointwise statistics across trials. traces is
// the batch's 2-D buffer: one row per trial, each of length T+1. The
// standard deviation is the population one (divisor N), matching the
// reference experiment's aggregation.
func aggregateTraces(policy string, traces []RegretTrace) AggregatedRegret {
	rounds := len(traces[0])
	agg := AggregatedRegret{
		Policy: policy,
		Mean:   make([]float64, rounds),
		Std:    make([]float64, rounds),
	}

	column := make([]float64, len(traces))
	for t := 0; t < rounds; t++ {
		for i, trace := range traces {
			column[i] = trace[t]
		}
		agg.Mean[t] = stat.Mean(column, nil)
		agg.Std[t] = stat.PopStdDev(column, nil)
	}
	return agg
}
