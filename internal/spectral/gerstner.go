package spectral

import "math"

// Component counts: CPU height queries stay cheap at 3; rendering uses up
// to the full direction-spread table.
const (
	QueryComponents  = 3
	RenderComponents = 12
)

// Fixed per-component direction offsets (degrees) and phase-speed
// multipliers. The offsets spread energy around the wind direction; the
// multipliers decorrelate the components over time.
var (
	directionSpread = [RenderComponents]float64{0, 12, -18, 7, -9, 21, -14, 4, -23, 16, -5, 10}
	speedSpread     = [RenderComponents]float64{1.0, 0.94, 1.05, 0.98, 1.09, 0.91, 1.03, 0.96, 1.12, 0.89, 1.01, 1.06}
)

// Component is a single Gerstner wave drawn from the spectrum.
type Component struct {
	Amplitude float64
	Omega     float64
	K         float64 // deep-water wavenumber, omega^2/g
	DirX      float64
	DirZ      float64
	SpeedMul  float64
}

// Synth evaluates the summed Gerstner displacement for a parameter set.
type Synth struct {
	params    Params
	steepness float64
	comps     []Component
}

// NewSynth draws n components from the JONSWAP spectrum. n is clamped to
// the direction-spread table size.
func NewSynth(p Params, n int, steepness float64) *Synth {
	if n > RenderComponents {
		n = RenderComponents
	}
	if n < 1 {
		n = 1
	}

	omegas := p.SampleOmegas(n)
	widths := BandWidths(omegas)

	baseDir := p.WindDirection * math.Pi / 180
	comps := make([]Component, n)
	for i, w := range omegas {
		amp := math.Sqrt(2*p.Density(w)*widths[i]) * p.AmplitudeScale
		dir := baseDir + directionSpread[i]*math.Pi/180
		comps[i] = Component{
			Amplitude: amp,
			Omega:     w,
			K:         w * w / p.Gravity,
			DirX:      math.Cos(dir),
			DirZ:      math.Sin(dir),
			SpeedMul:  speedSpread[i],
		}
	}
	return &Synth{params: p, steepness: steepness, comps: comps}
}

func (s *Synth) Params() Params          { return s.params }
func (s *Synth) Components() []Component { return s.comps }

// HeightAt returns the summed vertical displacement at (x,z) and time t.
func (s *Synth) HeightAt(x, z, t float64) float64 {
	h := 0.0
	for _, c := range s.comps {
		phase := c.K*(c.DirX*x+c.DirZ*z) - c.Omega*t*c.SpeedMul
		h += c.Amplitude * math.Sin(phase)
	}
	return h
}

// DisplacementAt returns the full trochoidal offset: horizontal
// sharpening plus vertical height.
func (s *Synth) DisplacementAt(x, z, t float64) (dx, dy, dz float64) {
	for _, c := range s.comps {
		if c.K < 1e-12 {
			continue
		}
		phase := c.K*(c.DirX*x+c.DirZ*z) - c.Omega*t*c.SpeedMul
		q := s.steepness / c.K
		cosP := math.Cos(phase)

		dx += c.DirX * q * cosP
		dz += c.DirZ * q * cosP
		dy += c.Amplitude * math.Sin(phase)
	}
	return dx, dy, dz
}

// NormalAt accumulates the analytic first-order surface normal of the
// component sum.
func (s *Synth) NormalAt(x, z, t float64) (nx, ny, nz float64) {
	ny = 1
	for _, c := range s.comps {
		phase := c.K*(c.DirX*x+c.DirZ*z) - c.Omega*t*c.SpeedMul
		ka := c.K * c.Amplitude
		cosP := math.Cos(phase)

		nx -= c.DirX * ka * cosP
		nz -= c.DirZ * ka * cosP
	}
	l := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if l < 1e-12 {
		return 0, 1, 0
	}
	return nx / l, ny / l, nz / l
}
