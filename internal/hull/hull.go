// Package hull computes a floating rigid body's displacement, Kelvin wake
// and spray sources on the heightfield grid, and owns the feedback values
// the solver folds back into elevation.
package hull

import (
	"math"

	"github.com/san-kum/oceansim/internal/compute"
	"github.com/san-kum/oceansim/internal/field"
)

// kelvinSin is sin(19.47 deg), the deep-water Kelvin wake half-angle.
const kelvinSin = 0.3398

// wakeDecay is the exponential wake relaxation rate per second.
const wakeDecay = 0.5

// Body is the floating body's kinematic state. Velocity is the per-call
// center delta supplied by MoveSphere, never integrated here.
type Body struct {
	X, Y, Z float64
	Radius  float64
	VX, VZ  float64
}

func (b Body) Speed() float64 {
	return math.Hypot(b.VX, b.VZ)
}

type Params struct {
	Stiffness   float64
	SlapDamping float64
	Feedback    float64
}

// Layer holds the double-buffered hull field at heightfield resolution.
// Cell channels: displacement, wakeStrength, unused, spraySourceIntensity.
type Layer struct {
	p         Params
	worldSize float64
	buf       *field.DoubleBuffer
	backend   compute.Backend
	body      Body
	hasBody   bool
}

func New(p Params, resolution int, worldSize float64, backend compute.Backend) *Layer {
	return &Layer{
		p:         p,
		worldSize: worldSize,
		buf:       field.NewDoubleBuffer(resolution, resolution),
		backend:   backend,
	}
}

func (l *Layer) Params() Params     { return l.p }
func (l *Layer) Field() *field.Grid { return l.buf.Read() }
func (l *Layer) Body() (Body, bool) { return l.body, l.hasBody }

func (l *Layer) Reset() {
	l.buf.Reset()
	l.hasBody = false
}

// SetBody replaces the tracked body state for the next Step.
func (l *Layer) SetBody(b Body) {
	l.body = b
	l.hasBody = true
}

// Step decays the previous frame's displacement and wake, then accumulates
// this frame's contact, wake, bow-wave and spray-source terms from the
// current heightfield.
func (l *Layer) Step(dt float64, hf *field.Grid) {
	r := l.buf.Read()
	w := l.buf.Write()
	res := l.buf.Read().W
	b := l.body
	active := l.hasBody

	speed := b.Speed()
	var vnx, vnz float64
	if speed > 1e-9 {
		vnx, vnz = b.VX/speed, b.VZ/speed
	}
	// Interference wavelength tied to the body size.
	kWake := 0.0
	if b.Radius > 1e-9 {
		kWake = 2 * math.Pi / b.Radius
	}

	dispDecay := math.Exp(-l.p.SlapDamping * dt)
	wkDecay := math.Exp(-wakeDecay * dt)

	l.backend.RunPass("hull.step", w, func(x, y int) field.Cell {
		prev := r.At(x, y)
		disp := prev[0] * dispDecay
		wake := prev[1] * wkDecay
		spray := 0.0

		if !active {
			return field.Cell{disp, wake, 0, spray}
		}

		wx, wz := l.cellToWorld(x, y, res)
		dx := wx - b.X
		dz := wz - b.Z
		dist := math.Hypot(dx, dz)

		eta := hf.AtClamped(x, y)[0]
		submersion := math.Max(0, eta-(b.Y-b.Radius))
		inSphere := 1 - smoothstep(0.8*b.Radius, 1.2*b.Radius, dist)

		if inSphere > 0 && submersion > 0 {
			disp += -submersion * inSphere * l.p.Stiffness * dt
		}

		if speed > 0.01 && dist > 1e-9 {
			dirX, dirZ := dx/dist, dz/dist

			// behindDot: how much the radial direction opposes travel.
			behindDot := -(dirX*vnx + dirZ*vnz)
			along := -(dx*vnx + dz*vnz)
			lat := math.Abs(dx*vnz - dz*vnx)

			if behindDot > 0 && along > 1e-6 {
				ratio := lat / along
				envelope := 1 - smoothstep(kelvinSin*0.8, kelvinSin*1.2, ratio)
				pattern := math.Sin(kWake*along) * math.Cos(kWake*lat*1.5)
				falloff := 1 - smoothstep(b.Radius, 8*b.Radius, dist)

				contribution := envelope * pattern * falloff * speed

				// Bow wave pushes against the wake just ahead of the body.
				forward := dirX*vnx + dirZ*vnz
				if forward > 0 && dist < 3*b.Radius {
					bow := forward * (1 - smoothstep(0, 3*b.Radius, dist)) * speed
					contribution -= bow
				}
				wake += contribution * dt
			} else {
				forward := dirX*vnx + dirZ*vnz
				if forward > 0 && dist < 3*b.Radius {
					bow := forward * (1 - smoothstep(0, 3*b.Radius, dist)) * speed
					wake -= bow * dt
				}
			}

			if speed > 0.5 {
				facing := math.Max(0, dirX*vnx+dirZ*vnz)
				rim := smoothstep(0.7*b.Radius, b.Radius, dist) * (1 - smoothstep(b.Radius, 1.3*b.Radius, dist))
				spray = facing * rim * speed
			}
		}

		return field.Cell{disp, wake, 0, spray}
	})
	l.buf.Swap()
}

func (l *Layer) cellToWorld(x, y, res int) (float64, float64) {
	n := float64(res - 1)
	wx := (float64(x)/n - 0.5) * l.worldSize
	wz := (float64(y)/n - 0.5) * l.worldSize
	return wx, wz
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
