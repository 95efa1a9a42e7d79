package spectral

import (
	"math"
	"testing"
)

func TestPeakComponentHasLargestAmplitude(t *testing.T) {
	s := NewSynth(testParams(), RenderComponents, 0.5)
	wp := testParams().PeakOmega()

	best := 0
	for i, c := range s.Components() {
		if c.Amplitude > s.Components()[best].Amplitude {
			best = i
		}
	}

	got := s.Components()[best].Omega
	if got < 0.7*wp || got > 1.8*wp {
		t.Errorf("largest component at omega=%f, expected near peak %f", got, wp)
	}
}

func TestDeepWaterDispersion(t *testing.T) {
	s := NewSynth(testParams(), QueryComponents, 0.5)
	for _, c := range s.Components() {
		want := c.Omega * c.Omega / 9.81
		if math.Abs(c.K-want) > 1e-12 {
			t.Errorf("wavenumber %f violates omega^2/g = %f", c.K, want)
		}
	}
}

func TestHeightIsPeriodicInTime(t *testing.T) {
	p := testParams()
	s := NewSynth(p, 1, 0.5)
	c := s.Components()[0]

	period := 2 * math.Pi / (c.Omega * c.SpeedMul)
	h0 := s.HeightAt(3, 4, 0)
	h1 := s.HeightAt(3, 4, period)
	if math.Abs(h0-h1) > 1e-9 {
		t.Errorf("single component should repeat after its period: %f vs %f", h0, h1)
	}
}

func TestHeightBounded(t *testing.T) {
	s := NewSynth(testParams(), RenderComponents, 0.5)

	bound := 0.0
	for _, c := range s.Components() {
		bound += c.Amplitude
	}

	for i := 0; i < 200; i++ {
		x, z, tt := float64(i)*1.7, float64(i)*-0.9, float64(i)*0.05
		if h := math.Abs(s.HeightAt(x, z, tt)); h > bound+1e-9 {
			t.Fatalf("height %f exceeds amplitude sum %f", h, bound)
		}
	}
}

func TestAmplitudeScaleLinear(t *testing.T) {
	p := testParams()
	s1 := NewSynth(p, QueryComponents, 0.5)
	p.AmplitudeScale = 2
	s2 := NewSynth(p, QueryComponents, 0.5)

	h1 := s1.HeightAt(1, 2, 3)
	h2 := s2.HeightAt(1, 2, 3)
	if math.Abs(h2-2*h1) > 1e-9 {
		t.Errorf("doubling amplitude scale should double height: %f vs %f", h1, h2)
	}
}

func TestWindDirectionRotatesComponents(t *testing.T) {
	p := testParams()
	east := NewSynth(p, 1, 0.5).Components()[0]

	p.WindDirection = 90
	north := NewSynth(p, 1, 0.5).Components()[0]

	if math.Abs(east.DirX-1) > 1e-9 || math.Abs(east.DirZ) > 1e-9 {
		t.Errorf("0 degrees should travel +x, got (%f,%f)", east.DirX, east.DirZ)
	}
	if math.Abs(north.DirZ-1) > 1e-9 || math.Abs(north.DirX) > 1e-9 {
		t.Errorf("90 degrees should travel +z, got (%f,%f)", north.DirX, north.DirZ)
	}
}

func TestNormalIsUnitAndUprightOnCalm(t *testing.T) {
	p := testParams()
	p.AmplitudeScale = 0
	s := NewSynth(p, QueryComponents, 0.5)

	nx, ny, nz := s.NormalAt(0, 0, 0)
	l := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if math.Abs(l-1) > 1e-9 {
		t.Errorf("normal should be unit length, got %f", l)
	}
	if ny < 0.9 {
		t.Errorf("calm water normal should point up, ny=%f", ny)
	}
}
