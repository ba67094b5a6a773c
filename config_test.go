package hybridplan

import (
	"testing"

	"go.viam.com/test"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	test.That(t, cfg.validate(), test.ShouldBeNil)
}

func TestDecodeConfigEmptyReturnsDefaults(t *testing.T) {
	cfg, err := DecodeConfig(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, DefaultConfig())
}

func TestDecodeConfigOverridesOnlyGivenFields(t *testing.T) {
	cfg, err := DecodeConfig(RawConfig{"MaxIterations": 10, "StepSize": 5.0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.MaxIterations, test.ShouldEqual, 10)
	test.That(t, cfg.StepSize, test.ShouldEqual, 5.0)
	test.That(t, cfg.Gamma, test.ShouldEqual, DefaultConfig().Gamma)
}

func TestConfigValidateAggregatesErrors(t *testing.T) {
	cfg := PlannerConfig{}
	err := cfg.validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "max_iterations")
	test.That(t, err.Error(), test.ShouldContainSubstring, "step_size")
	test.That(t, err.Error(), test.ShouldContainSubstring, "optimization_interval")
	test.That(t, err.Error(), test.ShouldContainSubstring, "gamma")
	test.That(t, err.Error(), test.ShouldContainSubstring, "connection_k")
	test.That(t, err.Error(), test.ShouldContainSubstring, "pso_particles")
	test.That(t, err.Error(), test.ShouldContainSubstring, "pso_iterations")
}

func TestConfigValidateRejectsNonPositiveConnectionK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConnectionK = 0
	err := cfg.validate()
	test.That(t, err, test.ShouldNotBeNil)
	kind, ok := KindOf(err)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, kind, test.ShouldEqual, InvalidConfig)
}

func TestPsoConfigNarrowsFields(t *testing.T) {
	cfg := DefaultConfig()
	psoCfg := cfg.psoConfig()
	test.That(t, psoCfg.Particles, test.ShouldEqual, cfg.PSOParticles)
	test.That(t, psoCfg.Iterations, test.ShouldEqual, cfg.PSOIterations)
	test.That(t, psoCfg.Inertia, test.ShouldEqual, cfg.PSOInertia)
	test.That(t, psoCfg.Cognitive, test.ShouldEqual, cfg.PSOCognitive)
	test.That(t, psoCfg.Social, test.ShouldEqual, cfg.PSOSocial)
}
