// Package foam advects, decays and sources the surface foam density from
// wave diagnostics, sheet damage and hull activity.
package foam

import (
	"math"

	"github.com/san-kum/oceansim/internal/compute"
	"github.com/san-kum/oceansim/internal/field"
)

type Params struct {
	Decay      float64
	EdgeGen    float64
	MaxDensity float64
}

// Layer holds the double-buffered foam field at heightfield resolution.
// Channel 0 is density; the rest are carried through advection untouched.
type Layer struct {
	p       Params
	buf     *field.DoubleBuffer
	backend compute.Backend
}

func New(p Params, resolution int, backend compute.Backend) *Layer {
	if p.MaxDensity <= 0 {
		p.MaxDensity = 3
	}
	return &Layer{p: p, buf: field.NewDoubleBuffer(resolution, resolution), backend: backend}
}

func (l *Layer) Params() Params     { return l.p }
func (l *Layer) Field() *field.Grid { return l.buf.Read() }
func (l *Layer) Reset()             { l.buf.Reset() }

// Seed writes a density value directly, for tests and tooling.
func (l *Layer) Seed(x, y int, density float64) {
	c := l.buf.Read().At(x, y)
	c[0] = density
	l.buf.Read().Set(x, y, c)
}

// Step advects the field one semi-Lagrangian step backward along the
// heightfield's velocity, decays it, and accumulates source terms.
func (l *Layer) Step(dt float64, dx float64, hf, diag, sheetGrid, hullGrid *field.Grid) {
	r := l.buf.Read()
	w := l.buf.Write()
	res := r.W

	decay := math.Exp(-l.p.Decay * dt)

	// Scale own indices into the sheet grid, whose resolution may differ.
	ssx := float64(sheetGrid.W-1) / float64(res-1)
	ssy := float64(sheetGrid.H-1) / float64(res-1)

	l.backend.RunPass("foam.step", w, func(x, y int) field.Cell {
		vel := hf.AtClamped(x, y)

		// Backward trace in grid units, clamped by Sample.
		fx := float64(x) - vel[2]*dt/dx
		fy := float64(y) - vel[3]*dt/dx
		c := r.Sample(fx, fy)

		density := c[0] * decay

		d := diag.AtClamped(x, y)
		steep, jac := d[0], d[2]
		if steep > 0.3 && jac < 0.3 {
			density += steep * 0.8 * dt
		}
		if steep > 0.5 {
			density += (steep - 0.5) * 2 * dt
		}

		// Seam edges shed foam: gradient of seamState across 4 neighbors.
		sx, sy := float64(x)*ssx, float64(y)*ssy
		seam := sheetGrid.Sample(sx, sy)[0]
		left := sheetGrid.Sample(sx-ssx, sy)[0]
		right := sheetGrid.Sample(sx+ssx, sy)[0]
		down := sheetGrid.Sample(sx, sy-ssy)[0]
		up := sheetGrid.Sample(sx, sy+ssy)[0]
		grad := math.Abs(right-left) + math.Abs(up-down)
		density += grad * l.p.EdgeGen * dt
		density += seam * 0.5 * dt

		h := hullGrid.AtClamped(x, y)
		density += math.Abs(h[1]) * 2 * dt
		density += h[3] * 3 * dt

		if density > l.p.MaxDensity {
			density = l.p.MaxDensity
		}
		if density < 0 {
			density = 0
		}

		return field.Cell{density, c[1], c[2], c[3]}
	})
	l.buf.Swap()
}
