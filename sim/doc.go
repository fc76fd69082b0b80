// Package sim provides the core simulation engine for the variance-aware
// UCB regret experiment.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - instance.go: the bandit problem instance (true arm means/variances, best arm)
//   - policy.go: the shared round loop (select → reward → update → regret append)
//   - ucb.go: the three UCB index variants (standard, known-variance, unknown-variance)
//
// # Architecture
//
// The experiment is a fixed-shape computation: 3 policies × N trials ×
// T rounds, with no I/O inside the core. ExperimentRunner (runner.go) owns
// trial orchestration and the 2-D regret buffers; trace.go holds the
// regret traces and their pointwise mean/std aggregation. All randomness
// flows through PartitionedRNG (rng.go), which derives an isolated stream
// per subsystem from one master seed, so a run is reproducible whether
// trials execute sequentially or in parallel.
//
// Report sinks (CSV arm table, trace dump, regret plot) live in the
// sim/report sub-package and consume the core's outputs read-only.
package sim
