// Package sheet evolves the breakable surface-topology layer: a per-cell
// state machine tracking how torn the water surface is, plus thickness,
// viscosity and pressure channels. Runs on its own grid resolution,
// independent of the heightfield's.
package sheet

import (
	"math"

	"github.com/san-kum/oceansim/internal/compute"
	"github.com/san-kum/oceansim/internal/field"
)

// rapidAscentRate is the d(eta)/dt above which the surface is climbing
// fast enough to tear on its own.
const rapidAscentRate = 2.0

// seamDecay is the constant exponential relaxation toward intact per
// second, independent of neighbor healing.
const seamDecay = 0.05

const maxViscosity = 5.0

type Params struct {
	Resolution      int
	WorldSize       float64
	BreakRate       float64
	HealRate        float64
	WaveStrainThres float64
	WaveBreakRate   float64
	Viscosity       float64
	Damping         float64
	HFCoupling      float64
	MinThick        float64
	MaxThick        float64
	RedistRate      float64
}

// Layer holds the double-buffered sheet state. Cell channels: seamState
// (0 intact, 1 broken), thickness, viscosity, pressure.
type Layer struct {
	p       Params
	buf     *field.DoubleBuffer
	backend compute.Backend
}

func New(p Params, backend compute.Backend) *Layer {
	l := &Layer{p: p, buf: field.NewDoubleBuffer(p.Resolution, p.Resolution), backend: backend}
	l.Reset()
	return l
}

func (l *Layer) Params() Params     { return l.p }
func (l *Layer) Field() *field.Grid { return l.buf.Read() }

// Reset restores the undamaged sheet: zero seam, unit thickness.
func (l *Layer) Reset() {
	l.buf.ResetTo(field.Cell{0, 1, 0, 0})
}

// Step advances the sheet by dt using the heightfield and its diagnostics,
// both sampled bilinearly since the sheet resolution may differ.
func (l *Layer) Step(dt float64, hf, diag *field.Grid) {
	r := l.buf.Read()
	w := l.buf.Write()
	res := l.p.Resolution
	p := l.p

	// Scale sheet indices into heightfield grid coordinates.
	sx := float64(hf.W-1) / float64(res-1)
	sy := float64(hf.H-1) / float64(res-1)

	viscDamp := math.Pow(p.Damping, dt*60)

	l.backend.RunPass("sheet.step", w, func(x, y int) field.Cell {
		c := r.At(x, y)
		left := r.AtClamped(x-1, y)
		right := r.AtClamped(x+1, y)
		down := r.AtClamped(x, y-1)
		up := r.AtClamped(x, y+1)

		fx, fy := float64(x)*sx, float64(y)*sy
		d := diag.Sample(fx, fy)
		h := hf.Sample(fx, fy)
		steep, jac, etaRate := d[0], d[2], d[3]

		seam := c[0]

		// Breaking: strain is steepness against the overturning margin.
		strain := steep / math.Max(jac, 0.01)
		if strain > p.WaveStrainThres {
			seam += (strain - p.WaveStrainThres) * p.WaveBreakRate * dt
		}
		if etaRate > rapidAscentRate {
			seam += etaRate * p.BreakRate * dt * 0.1
		}
		if seam > 1 {
			seam = 1
		}

		// Healing: intact neighbors pull the seam closed.
		intact := (1 - left[0]) + (1 - right[0]) + (1 - down[0]) + (1 - up[0])
		seam -= 0.25 * intact * p.HealRate * dt
		seam *= 1 - seamDecay*dt
		if seam < 0 {
			seam = 0
		}

		// Thickness: diffuse, regrow where intact, thin where broken.
		thick := c[1]
		lap := left[1] + right[1] + down[1] + up[1] - 4*c[1]
		thick += lap * p.RedistRate * dt
		thick += (1 - seam) * 0.1 * dt
		thick -= seam * 0.3 * dt
		if thick < p.MinThick {
			thick = p.MinThick
		}
		if thick > p.MaxThick {
			thick = p.MaxThick
		}

		// Viscosity: diffuse, damp, source at torn cells.
		visc := c[2]
		lapV := left[2] + right[2] + down[2] + up[2] - 4*c[2]
		visc = (visc + lapV*p.Viscosity*dt) * viscDamp
		if seam > 0.3 {
			visc += seam * 0.5 * dt
		}
		if visc < 0 {
			visc = 0
		}
		if visc > maxViscosity {
			visc = maxViscosity
		}

		// Pressure has no memory: rebuilt from elevation and steepness.
		pressure := h[0]*p.HFCoupling + steep*0.5

		return field.Cell{seam, thick, visc, pressure}
	})
	l.buf.Swap()
}
