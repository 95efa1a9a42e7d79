// Package engine sequences the water simulation passes in fixed order
// every tick and exposes the public surface callers drive the ocean with.
package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/oceansim/internal/compute"
	"github.com/san-kum/oceansim/internal/config"
	"github.com/san-kum/oceansim/internal/foam"
	"github.com/san-kum/oceansim/internal/hull"
	"github.com/san-kum/oceansim/internal/sheet"
	"github.com/san-kum/oceansim/internal/spectral"
	"github.com/san-kum/oceansim/internal/spray"
	"github.com/san-kum/oceansim/internal/swe"
)

// breakingProbes is how many random cells are sampled per step for
// breaking-driven spray emission.
const breakingProbes = 16

type Vec3 struct {
	X, Y, Z float64
}

// Engine owns every field buffer and the spray pool for one ocean
// instance. Single-threaded and frame-synchronous: Step runs all passes
// to completion on the calling goroutine, in fixed order, and no state is
// shared across instances.
type Engine struct {
	cfg     *config.Config
	backend compute.Backend

	solver *swe.Solver
	diag   *swe.Diagnostics
	sheet  *sheet.Layer
	hull   *hull.Layer
	foam   *foam.Layer
	spray  *spray.System
	synth  *spectral.Synth

	rng *rand.Rand
	t   float64

	SheetEnabled    bool
	HullEnabled     bool
	SprayEnabled    bool
	GerstnerEnabled bool
}

func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	backend := compute.AutoSelectBackend()
	if backend == nil || !backend.Available() {
		return nil, ErrBackendUnavailable
	}

	res := cfg.Heightfield.Resolution
	e := &Engine{
		cfg:     cfg,
		backend: backend,
		solver: swe.NewSolver(swe.Params{
			Resolution: res,
			WorldSize:  cfg.Heightfield.WorldSize,
			Depth:      cfg.Heightfield.Depth,
			Gravity:    cfg.Heightfield.Gravity,
			Damping:    cfg.Heightfield.Damping,
		}, backend),
		diag: swe.NewDiagnostics(res, backend),
		sheet: sheet.New(sheet.Params{
			Resolution:      cfg.Sheet.Resolution,
			WorldSize:       cfg.Sheet.WorldSize,
			BreakRate:       cfg.Sheet.BreakRate,
			HealRate:        cfg.Sheet.HealRate,
			WaveStrainThres: cfg.Sheet.WaveStrainThresh,
			WaveBreakRate:   cfg.Sheet.WaveBreakRate,
			Viscosity:       cfg.Sheet.Viscosity,
			Damping:         cfg.Sheet.Damping,
			HFCoupling:      cfg.Sheet.HFCoupling,
			MinThick:        cfg.Sheet.MinThick,
			MaxThick:        cfg.Sheet.MaxThick,
			RedistRate:      cfg.Sheet.RedistRate,
		}, backend),
		hull: hull.New(hull.Params{
			Stiffness:   cfg.Sheet.HullStiffness,
			SlapDamping: cfg.Sheet.SlapDamping,
			Feedback:    cfg.Hull.Feedback,
		}, res, cfg.Heightfield.WorldSize, backend),
		foam: foam.New(foam.Params{
			Decay:      cfg.Foam.Decay,
			EdgeGen:    cfg.Foam.EdgeGen,
			MaxDensity: cfg.Foam.MaxDensity,
		}, res, backend),
		spray: spray.New(spray.Params{
			Max:      cfg.Spray.Max,
			Lifetime: cfg.Spray.Lifetime,
			MinVY:    cfg.Spray.MinVY,
			Gravity:  cfg.Spray.Gravity,
			Drag:     cfg.Spray.Drag,
		}, rand.New(rand.NewSource(cfg.Seed))),
		rng: rand.New(rand.NewSource(cfg.Seed + 1)),

		SheetEnabled:    true,
		HullEnabled:     true,
		SprayEnabled:    true,
		GerstnerEnabled: true,
	}
	e.rebuildSynth()
	return e, nil
}

func (e *Engine) rebuildSynth() {
	e.synth = spectral.NewSynth(spectral.Params{
		WindSpeed:      e.cfg.Wind.Speed,
		WindDirection:  e.cfg.Wind.Direction,
		Fetch:          e.cfg.Wind.Fetch,
		AmplitudeScale: e.cfg.Wind.GerstnerAmplitude,
		Gravity:        e.cfg.Heightfield.Gravity,
	}, spectral.RenderComponents, e.cfg.Wind.GerstnerSteepness)
}

// Step advances the whole simulation by dt seconds. Pass order is fixed:
// heightfield sub-steps, hull contact and feedback, diagnostics, sheet,
// foam, spray. Later passes always observe the post-feedback heightfield,
// never a partially updated buffer.
func (e *Engine) Step(dt float64) {
	dt = swe.ClampDt(dt)

	e.solver.Step(dt)

	if e.HullEnabled {
		e.hull.Step(dt, e.solver.Field())
		e.solver.ApplyForcing(e.hull.Field(), e.hull.Params().Feedback, dt)
	}

	e.diag.Compute(e.solver.Field(), e.solver.Dx())

	if e.SheetEnabled {
		e.sheet.Step(dt, e.solver.Field(), e.diag.Field())
	}

	e.foam.Step(dt, e.solver.Dx(), e.solver.Field(), e.diag.Field(), e.sheet.Field(), e.hull.Field())

	if e.SprayEnabled {
		e.emitSpray()
		e.spray.Update(dt)
	}

	e.t += dt
}

func (e *Engine) emitSpray() {
	if e.HullEnabled {
		if b, ok := e.hull.Body(); ok {
			e.spray.EmitFromHull(b.X, b.Y, b.Z, b.VX, b.VZ, b.Radius, b.Speed())
		}
	}

	// Sparse random probes over the diagnostics field; full scans are not
	// worth it for a visual effect.
	d := e.diag.Field()
	res := d.W
	world := e.cfg.Heightfield.WorldSize
	for i := 0; i < breakingProbes; i++ {
		x := e.rng.Intn(res)
		y := e.rng.Intn(res)
		c := d.At(x, y)
		if c[0] > 0.4 && c[2] < 0.3 {
			wx := (float64(x)/float64(res-1) - 0.5) * world
			wz := (float64(y)/float64(res-1) - 0.5) * world
			e.spray.EmitFromBreaking(wx, wz, c[0])
		}
	}
}

// AddImpulse queues a Gaussian surface impulse in world coordinates for
// the next step.
func (e *Engine) AddImpulse(x, z, radius, strength float64) {
	e.solver.AddImpulse(x, z, radius, strength)
}

// AddDrop queues an impulse given normalized [-1,1] coordinates.
func (e *Engine) AddDrop(nx, nz, radius, strength float64) {
	e.solver.AddDrop(nx, nz, radius, strength)
}

// MoveSphere updates the floating body from its previous and current
// centers. Velocity is the raw center delta. With the hull layer disabled
// the body degrades to a synthetic impulse scaled by speed and radius.
func (e *Engine) MoveSphere(oldCenter, newCenter Vec3, radius float64) {
	vx := newCenter.X - oldCenter.X
	vz := newCenter.Z - oldCenter.Z

	if e.HullEnabled {
		e.hull.SetBody(hull.Body{
			X: newCenter.X, Y: newCenter.Y, Z: newCenter.Z,
			Radius: radius,
			VX:     vx, VZ: vz,
		})
		return
	}

	speed := math.Hypot(vx, vz)
	if speed > 1e-9 {
		e.solver.AddImpulse(newCenter.X, newCenter.Z, radius, speed*radius)
	}
}

// ReadHeightAt performs a blocking single-texel readback of the solver's
// elevation at world coordinates.
func (e *Engine) ReadHeightAt(x, z float64) float64 {
	return e.solver.ReadHeightAt(x, z)
}

// GetHeightAt is ReadHeightAt plus the spectral contribution when the
// synthesizer is enabled.
func (e *Engine) GetHeightAt(x, z float64) float64 {
	h := e.solver.ReadHeightAt(x, z)
	if e.GerstnerEnabled {
		h += e.synth.HeightAt(x, z, e.t)
	}
	return h
}

// Reset restores every field and the particle pool to the freshly
// constructed state. The configuration and toggles are kept.
func (e *Engine) Reset() {
	e.solver.Reset()
	e.diag.Reset()
	e.sheet.Reset()
	e.hull.Reset()
	e.foam.Reset()
	e.spray.Reset()
	e.t = 0
}

func (e *Engine) Time() float64                 { return e.t }
func (e *Engine) Config() *config.Config        { return e.cfg }
func (e *Engine) Backend() compute.Backend      { return e.backend }
func (e *Engine) Solver() *swe.Solver           { return e.solver }
func (e *Engine) Diagnostics() *swe.Diagnostics { return e.diag }
func (e *Engine) SheetLayer() *sheet.Layer      { return e.sheet }
func (e *Engine) HullLayer() *hull.Layer        { return e.hull }
func (e *Engine) FoamLayer() *foam.Layer        { return e.foam }
func (e *Engine) SpraySystem() *spray.System    { return e.spray }
func (e *Engine) Synth() *spectral.Synth        { return e.synth }

// GetParams exposes the live-tunable wind and synthesizer parameters.
func (e *Engine) GetParams() map[string]float64 {
	return map[string]float64{
		"windSpeed":         e.cfg.Wind.Speed,
		"windDirection":     e.cfg.Wind.Direction,
		"fetch":             e.cfg.Wind.Fetch,
		"gerstnerAmplitude": e.cfg.Wind.GerstnerAmplitude,
		"gerstnerSteepness": e.cfg.Wind.GerstnerSteepness,
	}
}

func (e *Engine) SetParam(name string, v float64) error {
	switch name {
	case "windSpeed":
		e.cfg.Wind.Speed = v
	case "windDirection":
		e.cfg.Wind.Direction = v
	case "fetch":
		e.cfg.Wind.Fetch = v
	case "gerstnerAmplitude":
		e.cfg.Wind.GerstnerAmplitude = v
	case "gerstnerSteepness":
		e.cfg.Wind.GerstnerSteepness = v
	default:
		return fmt.Errorf("engine: unknown parameter %q", name)
	}
	e.rebuildSynth()
	return nil
}
