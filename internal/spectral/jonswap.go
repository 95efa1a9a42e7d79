// Package spectral synthesizes deep-water waves: a JONSWAP energy
// spectrum sampled into a small set of Gerstner components. The result is
// additive to, and entirely independent of, the solver's state.
package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// JONSWAP peak enhancement and spectral widths.
	peakGamma = 3.3
	sigmaLow  = 0.07
	sigmaHigh = 0.09

	// Sampled band relative to the peak frequency.
	bandLow  = 0.5
	bandHigh = 4.0
)

type Params struct {
	WindSpeed      float64 // m/s at 10m
	WindDirection  float64 // degrees, direction waves travel toward
	Fetch          float64 // m
	AmplitudeScale float64
	Gravity        float64
}

// PeakOmega is the peak angular frequency for fetch-limited seas:
// 22*(g^2/(U*F))^(1/3).
func (p Params) PeakOmega() float64 {
	return 22 * math.Cbrt(p.Gravity*p.Gravity/(p.WindSpeed*p.Fetch))
}

// Alpha is the Phillips constant fitted to fetch: 0.076*(g*F/U^2)^(-0.22).
func (p Params) Alpha() float64 {
	chi := p.Gravity * p.Fetch / (p.WindSpeed * p.WindSpeed)
	return 0.076 * math.Pow(chi, -0.22)
}

// Density evaluates the JONSWAP spectral density S(omega): the
// Pierson-Moskowitz form times the gamma peak enhancement.
func (p Params) Density(omega float64) float64 {
	if omega <= 0 {
		return 0
	}
	wp := p.PeakOmega()
	g := p.Gravity

	pm := (p.Alpha() * g * g / math.Pow(omega, 5)) * math.Exp(-1.25*math.Pow(wp/omega, 4))

	sigma := sigmaLow
	if omega > wp {
		sigma = sigmaHigh
	}
	d := omega - wp
	r := math.Exp(-(d * d) / (2 * sigma * sigma * wp * wp))

	return pm * math.Pow(peakGamma, r)
}

// SampleOmegas returns n log-spaced frequencies across the energetic band
// [0.5wp, 4wp].
func (p Params) SampleOmegas(n int) []float64 {
	if n < 1 {
		n = 1
	}
	wp := p.PeakOmega()
	dst := make([]float64, n)
	if n == 1 {
		dst[0] = wp
		return dst
	}
	return floats.LogSpan(dst, bandLow*wp, bandHigh*wp)
}

// BandWidths returns the per-sample d(omega) for amplitude integration,
// using neighbor midpoints on the log-spaced grid.
func BandWidths(omegas []float64) []float64 {
	n := len(omegas)
	dw := make([]float64, n)
	if n == 1 {
		dw[0] = omegas[0]
		return dw
	}
	for i := range omegas {
		switch i {
		case 0:
			dw[i] = omegas[1] - omegas[0]
		case n - 1:
			dw[i] = omegas[n-1] - omegas[n-2]
		default:
			dw[i] = (omegas[i+1] - omegas[i-1]) / 2
		}
	}
	return dw
}
