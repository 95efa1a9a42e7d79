package metrics

import (
	"math"

	"github.com/san-kum/oceansim/internal/engine"
)

// FieldEnergy is the instantaneous shallow-water energy of the solver
// field: potential 0.5*g*eta^2 plus kinetic 0.5*H0*(u^2+v^2), integrated
// over cell area.
func FieldEnergy(e *engine.Engine) float64 {
	p := e.Solver().Params()
	f := e.Solver().Field()
	dx := e.Solver().Dx()
	area := dx * dx

	total := 0.0
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			c := f.At(x, y)
			total += (0.5*p.Gravity*c[0]*c[0] + 0.5*p.Depth*(c[2]*c[2]+c[3]*c[3])) * area
		}
	}
	return total
}

type Energy struct {
	name    string
	sum     float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (m *Energy) Name() string { return m.name }

func (m *Energy) Observe(e *engine.Engine) {
	m.sum += FieldEnergy(e)
	m.samples++
}

func (m *Energy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Energy) Reset() {
	m.sum = 0
	m.samples = 0
}

// EnergyDrift tracks the worst relative deviation from the first observed
// energy. With the sponge active this should trend down, never up.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (m *EnergyDrift) Name() string { return m.name }

func (m *EnergyDrift) Observe(e *engine.Engine) {
	energy := FieldEnergy(e)
	if m.samples == 0 {
		m.initial = energy
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(energy-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *EnergyDrift) Value() float64 { return m.maxDrift }

func (m *EnergyDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
