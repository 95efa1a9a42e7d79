package metrics

import (
	"testing"

	"github.com/san-kum/oceansim/internal/config"
	"github.com/san-kum/oceansim/internal/engine"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Heightfield.Resolution = 32
	cfg.Sheet.Resolution = 16
	cfg.Heightfield.WorldSize = 20
	cfg.Sheet.WorldSize = 20
	e, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

func TestFieldEnergyFlatWaterIsZero(t *testing.T) {
	e := testEngine(t)
	if got := FieldEnergy(e); got != 0 {
		t.Errorf("flat water should carry zero energy, got %e", got)
	}
}

func TestEnergyRisesAfterImpulse(t *testing.T) {
	e := testEngine(t)
	m := NewEnergy()

	m.Observe(e)
	if m.Value() != 0 {
		t.Fatal("expected zero initial energy")
	}
	m.Reset()

	e.AddImpulse(0, 0, 2, 10)
	e.Step(0.016)
	m.Observe(e)
	if m.Value() <= 0 {
		t.Error("impulse should inject energy")
	}
}

func TestEnergyReset(t *testing.T) {
	e := testEngine(t)
	e.AddImpulse(0, 0, 2, 10)
	e.Step(0.016)

	m := NewEnergy()
	m.Observe(e)
	if m.Value() == 0 {
		t.Fatal("expected non-zero energy")
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMaxCrestMonotone(t *testing.T) {
	e := testEngine(t)
	m := NewMaxCrest()

	e.AddImpulse(0, 0, 2, 10)
	e.Step(0.016)
	m.Observe(e)
	peak := m.Value()
	if peak <= 0 {
		t.Fatal("expected a crest after the impulse")
	}

	// The wave disperses; the recorded maximum must not shrink.
	for i := 0; i < 20; i++ {
		e.Step(0.016)
		m.Observe(e)
	}
	if m.Value() < peak {
		t.Errorf("max crest decreased from %f to %f", peak, m.Value())
	}
}

func TestFoamCoverageBounds(t *testing.T) {
	e := testEngine(t)
	m := NewFoamCoverage(0.01)

	for i := 0; i < 10; i++ {
		e.Step(0.016)
		m.Observe(e)
	}
	if v := m.Value(); v < 0 || v > 1 {
		t.Errorf("coverage %f outside [0,1]", v)
	}
}
