package swe

import (
	"math"

	"github.com/san-kum/oceansim/internal/compute"
	"github.com/san-kum/oceansim/internal/field"
)

// Diagnostics derives per-cell wave shape indicators from the current
// heightfield. Purely a function of the field: no internal state survives
// between calls, the whole grid is recomputed every step.
//
// Cell channels: steepness, curvature, overturning indicator, d(eta)/dt
// passthrough.
type Diagnostics struct {
	grid    *field.Grid
	backend compute.Backend
}

func NewDiagnostics(resolution int, backend compute.Backend) *Diagnostics {
	return &Diagnostics{grid: field.NewGrid(resolution, resolution), backend: backend}
}

func (d *Diagnostics) Field() *field.Grid { return d.grid }

func (d *Diagnostics) Reset() { d.grid.Clear() }

// Stride widens the sampling stencil at high resolutions so the pass cost
// stays roughly constant per world unit.
func Stride(resolution int) int {
	s := resolution / 128
	if s < 1 {
		s = 1
	}
	return s
}

// Compute fills the diagnostics grid from hf. The overturning indicator is
// 1 - steepness^2 - |curvature|*dx, an approximate foldover detector, not
// a true Jacobian determinant; values below ~0.3 with high steepness mark
// breaking.
func (d *Diagnostics) Compute(hf *field.Grid, dx float64) {
	stride := Stride(hf.W)
	h := dx * float64(stride)

	d.backend.RunPass("swe.diagnostics", d.grid, func(x, y int) field.Cell {
		c := hf.AtClamped(x, y)
		l := hf.AtClamped(x-stride, y)
		r := hf.AtClamped(x+stride, y)
		dn := hf.AtClamped(x, y-stride)
		up := hf.AtClamped(x, y+stride)

		gx := (r[0] - l[0]) / (2 * h)
		gz := (up[0] - dn[0]) / (2 * h)
		steep := math.Sqrt(gx*gx + gz*gz)

		curv := (l[0] + r[0] + dn[0] + up[0] - 4*c[0]) / (h * h)

		jac := 1 - steep*steep - math.Abs(curv)*dx

		return field.Cell{steep, curv, jac, c[1]}
	})
}
