package hybridplan

import (
	"go.uber.org/multierr"

	"github.com/mitchellh/mapstructure"

	"github.com/sealane/hybridplan/pso"
)

// PlannerConfig holds the tunable options of spec.md §3 "Planner
// Configuration". Zero-value fields are not valid; use DefaultConfig and
// override individual fields, or DecodeConfig to build one from loosely
// typed data (e.g. a CLI scenario file).
type PlannerConfig struct {
	MaxIterations        int
	StepSize             float64
	OptimizationInterval int
	Gamma                float64
	ConnectionK          int

	PSOParticles  int
	PSOIterations int
	PSOInertia    float64
	PSOCognitive  float64
	PSOSocial     float64

	// Seed makes the RNG stream, and therefore the whole plan, deterministic
	// (spec.md §5).
	Seed int64

	// StopRequested, if set, is polled once per outer iteration; returning
	// true ends the loop early and Plan returns the best path found so far
	// (spec.md §5's optional cooperative-cancellation note).
	StopRequested func() bool
}

// DefaultConfig returns the defaults enumerated in spec.md §3.
func DefaultConfig() PlannerConfig {
	return PlannerConfig{
		MaxIterations:        5000,
		StepSize:             20,
		OptimizationInterval: 200,
		Gamma:                150,
		ConnectionK:          5,
		PSOParticles:         20,
		PSOIterations:        50,
		PSOInertia:           0.7,
		PSOCognitive:         1.5,
		PSOSocial:            1.5,
	}
}

// RawConfig is loosely typed configuration data, e.g. decoded from a JSON
// scenario file or assembled from CLI flags.
type RawConfig map[string]interface{}

// DecodeConfig applies DefaultConfig and then overlays raw onto it via
// mapstructure, so callers only need to specify the fields they want to
// override.
func DecodeConfig(raw RawConfig) (PlannerConfig, error) {
	cfg := DefaultConfig()
	if len(raw) == 0 {
		return cfg, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return PlannerConfig{}, newPlanError(InvalidConfig, "building config decoder: %v", err)
	}
	if err := decoder.Decode(map[string]interface{}(raw)); err != nil {
		return PlannerConfig{}, newPlanError(InvalidConfig, "decoding config: %v", err)
	}
	return cfg, nil
}

// validate checks the invariants spec.md §6 requires of a config before
// planning starts, aggregating every violation instead of stopping at the
// first.
func (c PlannerConfig) validate() error {
	var errs error
	if c.MaxIterations < 1 {
		errs = multierr.Append(errs, newPlanError(InvalidConfig, "max_iterations must be >= 1, got %d", c.MaxIterations))
	}
	if c.StepSize <= 0 {
		errs = multierr.Append(errs, newPlanError(InvalidConfig, "step_size must be > 0, got %v", c.StepSize))
	}
	if c.OptimizationInterval < 1 {
		errs = multierr.Append(errs, newPlanError(InvalidConfig, "optimization_interval must be >= 1, got %d", c.OptimizationInterval))
	}
	if c.Gamma <= 0 {
		errs = multierr.Append(errs, newPlanError(InvalidConfig, "gamma must be > 0, got %v", c.Gamma))
	}
	if c.ConnectionK < 1 {
		errs = multierr.Append(errs, newPlanError(InvalidConfig, "connection_k must be >= 1, got %d", c.ConnectionK))
	}
	if c.PSOParticles < 1 {
		errs = multierr.Append(errs, newPlanError(InvalidConfig, "pso_particles must be >= 1, got %d", c.PSOParticles))
	}
	if c.PSOIterations < 1 {
		errs = multierr.Append(errs, newPlanError(InvalidConfig, "pso_iterations must be >= 1, got %d", c.PSOIterations))
	}
	return errs
}

// psoConfig narrows PlannerConfig to the fields the pso package needs.
func (c PlannerConfig) psoConfig() pso.Config {
	return pso.Config{
		Particles:  c.PSOParticles,
		Iterations: c.PSOIterations,
		Inertia:    c.PSOInertia,
		Cognitive:  c.PSOCognitive,
		Social:     c.PSOSocial,
	}
}
