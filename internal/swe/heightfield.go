// Package swe integrates the shallow-water-equation heightfield that owns
// the authoritative water surface, and derives per-cell wave diagnostics
// from it.
package swe

import (
	"math"

	"github.com/san-kum/oceansim/internal/compute"
	"github.com/san-kum/oceansim/internal/field"
)

// Safe operating band for a frame timestep. Out-of-band values are clamped,
// never rejected.
const (
	MinDt = 0.001
	MaxDt = 0.033
)

// cflSafety backs the explicit step off the exact CFL bound.
const cflSafety = 0.9

// spongeWidth is the fraction of the domain on each axis over which
// outgoing waves are absorbed.
const spongeWidth = 0.05

type Params struct {
	Resolution int
	WorldSize  float64
	Depth      float64
	Gravity    float64
	Damping    float64
}

// Impulse is a transient Gaussian source consumed by the first sub-step of
// the next Step call, then cleared.
type Impulse struct {
	X, Z, Radius, Strength float64
}

// Solver advances the heightfield. Cell channels: elevation, d(eta)/dt,
// u, v.
type Solver struct {
	p       Params
	dx      float64
	buf     *field.DoubleBuffer
	backend compute.Backend
	pending *Impulse
}

func NewSolver(p Params, backend compute.Backend) *Solver {
	return &Solver{
		p:       p,
		dx:      p.WorldSize / float64(p.Resolution),
		buf:     field.NewDoubleBuffer(p.Resolution, p.Resolution),
		backend: backend,
	}
}

func (s *Solver) Params() Params     { return s.p }
func (s *Solver) Dx() float64        { return s.dx }
func (s *Solver) Field() *field.Grid { return s.buf.Read() }

func (s *Solver) Reset() {
	s.buf.Reset()
	s.pending = nil
}

// ClampDt bounds a frame timestep into the safe operating band.
func ClampDt(dt float64) float64 {
	if dt < MinDt {
		return MinDt
	}
	if dt > MaxDt {
		return MaxDt
	}
	return dt
}

// SubSteps recomputes the CFL split for dt from the current grid and
// physical constants. Never cached: resolution-independent callers get a
// fresh bound every frame.
func (s *Solver) SubSteps(dt float64) (n int, subDt float64) {
	dt = ClampDt(dt)
	c := math.Sqrt(s.p.Gravity * s.p.Depth)
	dtMax := (s.dx / (2 * c)) * cflSafety
	n = int(math.Ceil(dt / dtMax))
	if n < 1 {
		n = 1
	}
	return n, dt / float64(n)
}

// AddImpulse records a pending Gaussian source in world coordinates. A
// still-unconsumed impulse is overwritten; last writer wins.
func (s *Solver) AddImpulse(x, z, radius, strength float64) {
	s.pending = &Impulse{X: x, Z: z, Radius: radius, Strength: strength}
}

// AddDrop takes normalized [-1,1] coordinates and delegates to AddImpulse
// in world units.
func (s *Solver) AddDrop(nx, nz, radius, strength float64) {
	half := s.p.WorldSize / 2
	s.AddImpulse(nx*half, nz*half, radius, strength)
}

// Step advances elevation/u/v by dt seconds split into CFL-stable
// sub-steps. Returns the clamped dt actually integrated.
func (s *Solver) Step(dt float64) float64 {
	dt = ClampDt(dt)
	n, subDt := s.SubSteps(dt)

	imp := s.pending
	s.pending = nil

	for sub := 0; sub < n; sub++ {
		var subImp *Impulse
		if sub == 0 {
			subImp = imp
		}
		s.runSubStep(subDt, dt, subImp)
	}
	return dt
}

func (s *Solver) runSubStep(subDt, fullDt float64, imp *Impulse) {
	r := s.buf.Read()
	w := s.buf.Write()
	dx := s.dx
	depth := s.p.Depth
	g := s.p.Gravity

	// Energy loss per wall-second stays constant regardless of how many
	// sub-steps dt was split into.
	damp := math.Pow(s.p.Damping, subDt*60)

	s.backend.RunPass("swe.integrate", w, func(x, y int) field.Cell {
		l := r.AtClamped(x-1, y)
		rt := r.AtClamped(x+1, y)
		dn := r.AtClamped(x, y-1)
		up := r.AtClamped(x, y+1)

		// Lax-Friedrichs: the cell value is the 4-neighbor average.
		eta := 0.25 * (l[0] + rt[0] + dn[0] + up[0])
		u := 0.25 * (l[2] + rt[2] + dn[2] + up[2])
		v := 0.25 * (l[3] + rt[3] + dn[3] + up[3])

		// Continuity.
		dudx := (rt[2] - l[2]) / (2 * dx)
		dvdz := (up[3] - dn[3]) / (2 * dx)
		detadt := -depth * (dudx + dvdz)
		eta += detadt * subDt

		// Momentum.
		detadx := (rt[0] - l[0]) / (2 * dx)
		detadz := (up[0] - dn[0]) / (2 * dx)
		u += -g * detadx * subDt
		v += -g * detadz * subDt

		sponge := s.spongeAt(x, y) * damp
		eta *= sponge
		u *= sponge
		v *= sponge

		if imp != nil {
			wx, wz := s.cellToWorld(x, y)
			ddx := wx - imp.X
			ddz := wz - imp.Z
			r2 := imp.Radius * imp.Radius
			if r2 < 1e-12 {
				r2 = 1e-12
			}
			eta += imp.Strength * math.Exp(-(ddx*ddx+ddz*ddz)/r2) * fullDt
		}

		return field.Cell{eta, detadt, u, v}
	})
	s.buf.Swap()
}

// spongeAt ramps 0→1 across the outer 5% of the domain on each axis so
// outgoing waves die at the boundary instead of reflecting.
func (s *Solver) spongeAt(x, y int) float64 {
	res := float64(s.p.Resolution - 1)
	nx := float64(x) / res
	nz := float64(y) / res

	ex := math.Min(nx, 1-nx)
	ez := math.Min(nz, 1-nz)
	return smoothstep(0, spongeWidth, ex) * smoothstep(0, spongeWidth, ez)
}

// ApplyForcing adds scale*(src[0]+0.5*src[1])*dt into elevation. This is
// the hull feedback pass, the only place hull state re-enters the solver.
func (s *Solver) ApplyForcing(src *field.Grid, scale, dt float64) {
	r := s.buf.Read()
	w := s.buf.Write()

	s.backend.RunPass("swe.forcing", w, func(x, y int) field.Cell {
		c := r.At(x, y)
		h := src.AtClamped(x, y)
		c[0] += scale * (h[0] + 0.5*h[1]) * dt
		return c
	})
	s.buf.Swap()
}

// ReadHeightAt performs a single-texel blocking readback of elevation at
// world coordinates. Indices are clamped before the read, never
// out-of-range. Callers must not invoke this per-pixel.
func (s *Solver) ReadHeightAt(x, z float64) float64 {
	ix, iz := s.worldToCell(x, z)
	return s.backend.ReadTexel(s.buf.Read(), ix, iz)[0]
}

func (s *Solver) worldToCell(x, z float64) (int, int) {
	res := s.p.Resolution
	fx := (x/s.p.WorldSize + 0.5) * float64(res-1)
	fz := (z/s.p.WorldSize + 0.5) * float64(res-1)
	return clampIndex(int(math.Round(fx)), res), clampIndex(int(math.Round(fz)), res)
}

func (s *Solver) cellToWorld(x, y int) (float64, float64) {
	res := float64(s.p.Resolution - 1)
	wx := (float64(x)/res - 0.5) * s.p.WorldSize
	wz := (float64(y)/res - 0.5) * s.p.WorldSize
	return wx, wz
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
