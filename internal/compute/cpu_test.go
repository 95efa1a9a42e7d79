package compute

import (
	"testing"

	"github.com/san-kum/oceansim/internal/field"
)

func TestRunPassParallelMatchesSerial(t *testing.T) {
	b := NewCPUBackend()

	// Large enough to take the parallel path.
	big := field.NewGrid(128, 128)
	ref := field.NewGrid(128, 128)

	k := func(x, y int) field.Cell {
		return field.Cell{float64(x), float64(y), float64(x * y), 1}
	}

	b.RunPass("test", big, k)
	b.runSerial(ref, k)

	for y := 0; y < ref.H; y++ {
		for x := 0; x < ref.W; x++ {
			if big.At(x, y) != ref.At(x, y) {
				t.Fatalf("mismatch at (%d,%d): %v vs %v", x, y, big.At(x, y), ref.At(x, y))
			}
		}
	}
}

func TestReadTexelClamps(t *testing.T) {
	b := NewCPUBackend()
	g := field.NewGrid(8, 8)
	g.Set(7, 7, field.Cell{3, 0, 0, 0})

	if got := b.ReadTexel(g, 100, 100)[0]; got != 3 {
		t.Errorf("expected clamped readback of edge cell, got %f", got)
	}
}
