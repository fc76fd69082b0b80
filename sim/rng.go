// sim/rng.go
package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === ExperimentKey ===

// ExperimentKey uniquely identifies a reproducible experiment batch.
// Two batches with the same ExperimentKey and identical configuration
// MUST produce bit-for-bit identical regret traces.
type ExperimentKey int64

// NewExperimentKey creates an ExperimentKey from a seed value.
func NewExperimentKey(seed int64) ExperimentKey {
	return ExperimentKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemInstance is the RNG subsystem for problem-instance
	// generation (true arm means and variances).
	SubsystemInstance = "instance"
)

// SubsystemTrial returns the subsystem name for trial i of the named
// policy. Each (policy, trial) pair draws its reward noise from its own
// stream, which keeps trials statistically independent and lets them run
// in any order, or in parallel, without changing results.
func SubsystemTrial(policy string, trial int) string {
	return fmt.Sprintf("%s/trial_%d", policy, trial)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName). Hash-based
// derivation makes the streams order-independent: a subsystem's sequence
// does not depend on which other subsystems were touched first.
//
// Thread-safety: NOT thread-safe. Derive all streams from a single
// goroutine; the returned *rand.Rand values may then each be consumed by
// their own goroutine.
type PartitionedRNG struct {
	key        ExperimentKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from an ExperimentKey.
func NewPartitionedRNG(key ExperimentKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// ForTrial returns the RNG stream for trial i of the named policy.
// Convenience wrapper around ForSubsystem(SubsystemTrial(policy, trial)).
func (p *PartitionedRNG) ForTrial(policy string, trial int) *rand.Rand {
	return p.ForSubsystem(SubsystemTrial(policy, trial))
}

// Key returns the ExperimentKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() ExperimentKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
