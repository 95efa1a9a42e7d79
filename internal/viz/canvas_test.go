package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/oceansim/internal/config"
	"github.com/san-kum/oceansim/internal/engine"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("Set(0,0) left the cell empty")
	}
	c.Set(-1, 5) // out of range, must not panic
	c.Set(100, 100)
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("Clear left lit pixels")
			}
		}
	}
}

func TestPlotProfileFlatLine(t *testing.T) {
	c := NewCanvas(8, 2)
	c.PlotProfile([]float64{0, 0, 0, 0})
	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("flat profile drew nothing")
	}
}

func TestFieldViewNames(t *testing.T) {
	names := map[FieldView]string{
		ViewHeight: "height",
		ViewFoam:   "foam",
		ViewSeam:   "seam",
		ViewWake:   "wake",
	}
	for v, want := range names {
		if v.String() != want {
			t.Errorf("view %d = %q, want %q", v, v.String(), want)
		}
	}
}

func TestViewRenders(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Heightfield.Resolution = 64
	cfg.Sheet.Resolution = 32
	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	m := NewModel(eng, "calm", 0.016)
	m.step()
	out := m.View()
	if !strings.Contains(out, "OCEANSIM") {
		t.Error("view missing header")
	}
	if !strings.Contains(out, "RUNNING") {
		t.Error("view missing status")
	}
}
