package compute

import "github.com/san-kum/oceansim/internal/field"

// Kernel evaluates one output cell of a pass. Input grids and uniforms are
// captured by the closure; the backend only decides how cells are scheduled.
type Kernel func(x, y int) field.Cell

// Backend runs named full-grid passes and single-texel readbacks. Passes
// for a frame always execute in submission order and RunPass returns only
// after the target grid is fully written, which is what makes the
// ping-pong swap a hard barrier between passes.
type Backend interface {
	Name() string
	Available() bool
	// RunPass evaluates k for every cell of dst. The name is carried for
	// instrumentation only and does not affect execution.
	RunPass(name string, dst *field.Grid, k Kernel)
	// ReadTexel blocks until prior passes have completed, then returns one
	// cell of g. Callers are expected to keep this to sparse per-frame
	// queries, never per-vertex work.
	ReadTexel(g *field.Grid, x, y int) field.Cell
	Cleanup()
}

func AutoSelectBackend() Backend {
	return NewCPUBackend()
}
