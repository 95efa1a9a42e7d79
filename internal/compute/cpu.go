package compute

import (
	"runtime"
	"sync"

	"github.com/san-kum/oceansim/internal/field"
)

// Grids below this cell count run serially; goroutine fan-out costs more
// than it saves on small passes.
const parallelThreshold = 64 * 64

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{workers: runtime.NumCPU()}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) RunPass(name string, dst *field.Grid, k Kernel) {
	if dst.W*dst.H < parallelThreshold || c.workers < 2 {
		c.runSerial(dst, k)
		return
	}
	c.runParallel(dst, k)
}

func (c *CPUBackend) runSerial(dst *field.Grid, k Kernel) {
	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			dst.Set(x, y, k(x, y))
		}
	}
}

func (c *CPUBackend) runParallel(dst *field.Grid, k Kernel) {
	var wg sync.WaitGroup
	chunk := (dst.H + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunk
			end := start + chunk
			if end > dst.H {
				end = dst.H
			}

			for y := start; y < end; y++ {
				for x := 0; x < dst.W; x++ {
					dst.Set(x, y, k(x, y))
				}
			}
		}(w)
	}

	wg.Wait()
}

// ReadTexel on the CPU backend has no pipeline to drain; RunPass has
// already returned synchronously, so this is a plain clamped load.
func (c *CPUBackend) ReadTexel(g *field.Grid, x, y int) field.Cell {
	return g.AtClamped(x, y)
}
