// Package metrics observes an engine across steps and reduces runs to
// scalar summaries.
package metrics

import "github.com/san-kum/oceansim/internal/engine"

type Metric interface {
	Name() string
	Observe(e *engine.Engine)
	Value() float64
	Reset()
}
