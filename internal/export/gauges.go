// Package export records wave-gauge time series from a running engine and
// writes them to JSON, CSV or SVG.
package export

import (
	"github.com/san-kum/oceansim/internal/engine"
)

// Gauge is a fixed world-space sample point.
type Gauge struct {
	Name string
	X, Z float64
}

// Recorder samples elevation at each gauge once per observation.
type Recorder struct {
	gauges []Gauge
	times  []float64
	series [][]float64 // one slice per gauge
}

func NewRecorder(gauges []Gauge) *Recorder {
	return &Recorder{
		gauges: gauges,
		series: make([][]float64, len(gauges)),
	}
}

// DefaultGauges spreads five gauges across the domain: center, midpoints
// of each half-axis.
func DefaultGauges(worldSize float64) []Gauge {
	q := worldSize / 4
	return []Gauge{
		{Name: "center", X: 0, Z: 0},
		{Name: "east", X: q, Z: 0},
		{Name: "west", X: -q, Z: 0},
		{Name: "north", X: 0, Z: q},
		{Name: "south", X: 0, Z: -q},
	}
}

func (r *Recorder) Observe(e *engine.Engine) {
	r.times = append(r.times, e.Time())
	for i, g := range r.gauges {
		r.series[i] = append(r.series[i], e.GetHeightAt(g.X, g.Z))
	}
}

func (r *Recorder) Gauges() []Gauge     { return r.gauges }
func (r *Recorder) Times() []float64    { return r.times }
func (r *Recorder) Series() [][]float64 { return r.series }
func (r *Recorder) Samples() int        { return len(r.times) }
