// Package spray runs the CPU-side spray particle pool driven by hull
// motion and breaking waves. The pool is fixed-size: saturation recycles
// the particle with the least remaining life instead of dropping emissions.
package spray

import (
	"math"
	"math/rand"
)

const (
	// Cone half-angle around the travel direction for hull emission.
	hullConeHalfAngle = 54 * math.Pi / 180

	hullSpeedThreshold  = 0.3
	breakSteepThreshold = 0.4

	// Particles die when they sink below the kill plane.
	killPlaneY = -1.0

	// One integration step may never remove more than 90% of the speed.
	maxDragFraction = 0.9

	positionJitter = 0.08
	velocityJitter = 0.3
)

type Params struct {
	Max      int
	Lifetime float64
	MinVY    float64
	Gravity  float64
	Drag     float64
}

type Particle struct {
	X, Y, Z    float64
	VX, VY, VZ float64
	Life       float64
	MaxLife    float64
	Size       float64
	Active     bool
}

// System owns the particle pool and the packed upload buffers rebuilt
// every Update. The PRNG is injected so emission is deterministic under a
// fixed seed.
type System struct {
	p         Params
	particles []Particle
	rng       *rand.Rand

	activeCount int
	positions   []float64 // x,y,z triplets, packed to activeCount
	velocities  []float64
	lifeFrac    []float64
	sizes       []float64
}

func New(p Params, rng *rand.Rand) *System {
	if p.Max <= 0 {
		p.Max = 512
	}
	return &System{
		p:          p,
		particles:  make([]Particle, p.Max),
		rng:        rng,
		positions:  make([]float64, 0, p.Max*3),
		velocities: make([]float64, 0, p.Max*3),
		lifeFrac:   make([]float64, 0, p.Max),
		sizes:      make([]float64, 0, p.Max),
	}
}

func (s *System) ActiveCount() int         { return s.activeCount }
func (s *System) Positions() []float64     { return s.positions }
func (s *System) Velocities() []float64    { return s.velocities }
func (s *System) LifeFractions() []float64 { return s.lifeFrac }
func (s *System) Sizes() []float64         { return s.sizes }

func (s *System) Reset() {
	for i := range s.particles {
		s.particles[i] = Particle{}
	}
	s.repack()
}

// acquire returns an inactive slot, or recycles the particle with the
// least remaining life when the pool is saturated.
func (s *System) acquire() *Particle {
	var victim *Particle
	for i := range s.particles {
		p := &s.particles[i]
		if !p.Active {
			return p
		}
		if victim == nil || p.Life < victim.Life {
			victim = p
		}
	}
	return victim
}

// Emit launches count particles around the requested position/velocity
// with jitter. Vertical velocity is floored at MinVY so spray always
// clears the surface.
func (s *System) Emit(x, y, z, vx, vy, vz float64, count int) {
	speed := math.Sqrt(vx*vx + vy*vy + vz*vz)
	for i := 0; i < count; i++ {
		p := s.acquire()

		p.X = x + (s.rng.Float64()-0.5)*positionJitter
		p.Y = y + (s.rng.Float64()-0.5)*positionJitter
		p.Z = z + (s.rng.Float64()-0.5)*positionJitter

		p.VX = vx + (s.rng.Float64()-0.5)*speed*velocityJitter
		p.VY = vy + (s.rng.Float64()-0.5)*speed*velocityJitter
		p.VZ = vz + (s.rng.Float64()-0.5)*speed*velocityJitter
		if p.VY < s.p.MinVY {
			p.VY = s.p.MinVY
		}

		p.Life = s.p.Lifetime * (0.5 + s.rng.Float64()*0.5)
		p.MaxLife = p.Life
		p.Size = 0.04 + s.rng.Float64()*0.08
		p.Active = true
	}
}

// EmitFromHull sprays off the leading rim of a moving body. No-op below
// the hull speed threshold.
func (s *System) EmitFromHull(bodyX, bodyY, bodyZ, velX, velZ, radius, speed float64) {
	if speed < hullSpeedThreshold {
		return
	}
	count := int(speed * 3)
	if count > 8 {
		count = 8
	}
	heading := math.Atan2(velZ, velX)

	for i := 0; i < count; i++ {
		theta := heading + (s.rng.Float64()-0.5)*2*hullConeHalfAngle
		px := bodyX + math.Cos(theta)*radius
		pz := bodyZ + math.Sin(theta)*radius

		vx := math.Cos(theta) * speed * 1.5
		vz := math.Sin(theta) * speed * 1.5
		vy := speed * (0.8 + s.rng.Float64()*0.7)

		s.Emit(px, bodyY, pz, vx, vy, vz, 1)
	}
}

// EmitFromBreaking sprays radially from a breaking crest. No-op below the
// steepness threshold.
func (s *System) EmitFromBreaking(x, z, steepness float64) {
	if steepness < breakSteepThreshold {
		return
	}
	count := int((steepness - breakSteepThreshold) * 10)
	if count > 4 {
		count = 4
	}

	for i := 0; i < count; i++ {
		theta := s.rng.Float64() * 2 * math.Pi
		speed := steepness * 1.2

		vx := math.Cos(theta) * speed
		vz := math.Sin(theta) * speed
		vy := speed * (0.6 + s.rng.Float64()*0.6)

		s.Emit(x, 0, z, vx, vy, vz, 1)
	}
}

// Update integrates every active particle with gravity and clamped linear
// drag, retires the dead, and repacks the upload buffers.
func (s *System) Update(dt float64) {
	for i := range s.particles {
		p := &s.particles[i]
		if !p.Active {
			continue
		}

		p.Life -= dt
		if p.Life <= 0 || p.Y < killPlaneY {
			p.Active = false
			continue
		}

		p.VY -= s.p.Gravity * dt

		// Linear drag removes a fixed fraction of velocity per second,
		// clamped so one step never kills more than 90% of the speed.
		frac := s.p.Drag * dt
		if frac > maxDragFraction {
			frac = maxDragFraction
		}
		p.VX -= p.VX * frac
		p.VY -= p.VY * frac
		p.VZ -= p.VZ * frac

		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Z += p.VZ * dt
	}

	s.repack()
}

func (s *System) repack() {
	s.positions = s.positions[:0]
	s.velocities = s.velocities[:0]
	s.lifeFrac = s.lifeFrac[:0]
	s.sizes = s.sizes[:0]

	n := 0
	for i := range s.particles {
		p := &s.particles[i]
		if !p.Active {
			continue
		}
		n++
		s.positions = append(s.positions, p.X, p.Y, p.Z)
		s.velocities = append(s.velocities, p.VX, p.VY, p.VZ)
		s.lifeFrac = append(s.lifeFrac, p.Life/p.MaxLife)
		s.sizes = append(s.sizes, p.Size)
	}
	s.activeCount = n
}
