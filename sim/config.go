// sim/config.go
package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VarianceRange bounds the uniform distribution arm variances are drawn from.
type VarianceRange struct {
	Min float64 // inclusive lower bound (must be > 0)
	Max float64 // exclusive upper bound (must be > Min)
}

// Validate checks that the range can produce strictly positive variances.
func (r VarianceRange) Validate() error {
	if r.Min <= 0 {
		return fmt.Errorf("variance range min must be positive, got %g", r.Min)
	}
	if r.Min >= r.Max {
		return fmt.Errorf("variance range min must be below max, got [%g, %g)", r.Min, r.Max)
	}
	return nil
}

// Canonical variance regimes. Keys are the accepted values of the
// --variance flag and the spec file's "variance" field.
var VarianceRegimes = map[string]VarianceRange{
	"low":    {Min: 1, Max: 5},
	"medium": {Min: 5, Max: 20},
	"high":   {Min: 20, Max: 50},
}

// RegimeRange resolves a variance regime name to its range.
func RegimeRange(name string) (VarianceRange, error) {
	r, ok := VarianceRegimes[name]
	if !ok {
		return VarianceRange{}, fmt.Errorf("unknown variance regime %q; valid: low, medium, high", name)
	}
	return r, nil
}

// ExperimentConfig groups the parameters of one experiment batch.
type ExperimentConfig struct {
	Arms        int           // number of arms K (must be > 0)
	Variances   VarianceRange // range arm variances are drawn from
	Horizon     int           // rounds per trial T (must be > 0)
	Trials      int           // independent trials per policy N (must be > 0)
	Seed        int64         // master seed; all randomness derives from it
	Parallelism int           // max concurrent trials (1 = sequential, 0 defaults to 1)
}

// Validate checks that all fields can start a simulation.
func (c *ExperimentConfig) Validate() error {
	if c.Arms <= 0 {
		return fmt.Errorf("arm count must be positive, got %d", c.Arms)
	}
	if err := c.Variances.Validate(); err != nil {
		return err
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", c.Horizon)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("trial count must be positive, got %d", c.Trials)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must be non-negative, got %d", c.Parallelism)
	}
	return nil
}

// ExperimentSpec is the YAML mirror of the CLI surface.
// Loaded via LoadExperimentSpec(path). Either a canonical regime name or an
// explicit custom range may be given, not both.
type ExperimentSpec struct {
	Arms        int      `yaml:"arms"`
	Variance    string   `yaml:"variance,omitempty"`     // low, medium or high
	VarianceMin *float64 `yaml:"variance_min,omitempty"` // custom range lower bound
	VarianceMax *float64 `yaml:"variance_max,omitempty"` // custom range upper bound
	Horizon     int      `yaml:"horizon,omitempty"`      // default 1000000
	Trials      int      `yaml:"trials,omitempty"`       // default 50
	Seed        int64    `yaml:"seed,omitempty"`         // default 42
	Parallelism int      `yaml:"parallelism,omitempty"`  // default 1
	OutputDir   string   `yaml:"output_dir,omitempty"`   // where report files land
}

// LoadExperimentSpec reads and parses a YAML experiment spec.
// Unknown fields are rejected.
func LoadExperimentSpec(path string) (*ExperimentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment spec: %w", err)
	}
	var spec ExperimentSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing experiment spec: %w", err)
	}
	return &spec, nil
}

// Config resolves the spec into a validated ExperimentConfig, applying the
// defaults of the reference experiment (T=1000000, N=50, seed 42).
func (s *ExperimentSpec) Config() (ExperimentConfig, error) {
	cfg := ExperimentConfig{
		Arms:        s.Arms,
		Horizon:     s.Horizon,
		Trials:      s.Trials,
		Seed:        s.Seed,
		Parallelism: s.Parallelism,
	}
	if cfg.Horizon == 0 {
		cfg.Horizon = 1000000
	}
	if cfg.Trials == 0 {
		cfg.Trials = 50
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.Parallelism == 0 {
		cfg.Parallelism = 1
	}

	switch {
	case s.Variance != "" && (s.VarianceMin != nil || s.VarianceMax != nil):
		return ExperimentConfig{}, fmt.Errorf("variance regime %q and custom range are mutually exclusive", s.Variance)
	case s.Variance != "":
		r, err := RegimeRange(s.Variance)
		if err != nil {
			return ExperimentConfig{}, err
		}
		cfg.Variances = r
	case s.VarianceMin != nil && s.VarianceMax != nil:
		cfg.Variances = VarianceRange{Min: *s.VarianceMin, Max: *s.VarianceMax}
	default:
		return ExperimentConfig{}, fmt.Errorf("either variance regime or variance_min/variance_max required")
	}

	if err := cfg.Validate(); err != nil {
		return ExperimentConfig{}, err
	}
	return cfg, nil
}
