package metrics

import (
	"math"

	"github.com/san-kum/oceansim/internal/engine"
)

// MaxCrest records the largest absolute elevation seen over a run.
type MaxCrest struct {
	name string
	max  float64
}

func NewMaxCrest() *MaxCrest {
	return &MaxCrest{name: "max_crest"}
}

func (m *MaxCrest) Name() string { return m.name }

func (m *MaxCrest) Observe(e *engine.Engine) {
	f := e.Solver().Field()
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			if a := math.Abs(f.At(x, y)[0]); a > m.max {
				m.max = a
			}
		}
	}
}

func (m *MaxCrest) Value() float64 { return m.max }
func (m *MaxCrest) Reset()         { m.max = 0 }

// FoamCoverage is the mean fraction of cells carrying visible foam.
type FoamCoverage struct {
	name      string
	threshold float64
	sum       float64
	samples   int
}

func NewFoamCoverage(threshold float64) *FoamCoverage {
	return &FoamCoverage{name: "foam_coverage", threshold: threshold}
}

func (m *FoamCoverage) Name() string { return m.name }

func (m *FoamCoverage) Observe(e *engine.Engine) {
	f := e.FoamLayer().Field()
	covered := 0
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			if f.At(x, y)[0] > m.threshold {
				covered++
			}
		}
	}
	m.sum += float64(covered) / float64(f.W*f.H)
	m.samples++
}

func (m *FoamCoverage) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *FoamCoverage) Reset() {
	m.sum = 0
	m.samples = 0
}
