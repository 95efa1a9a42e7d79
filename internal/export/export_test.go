package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/oceansim/internal/config"
	"github.com/san-kum/oceansim/internal/engine"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Heightfield.Resolution = 32
	cfg.Sheet.Resolution = 16
	e, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return e
}

func record(t *testing.T, steps int) *Recorder {
	t.Helper()
	e := testEngine(t)
	e.AddDrop(0, 0, 1, 10)
	rec := NewRecorder(DefaultGauges(e.Config().Heightfield.WorldSize))
	for i := 0; i < steps; i++ {
		e.Step(0.016)
		rec.Observe(e)
	}
	return rec
}

func TestRecorderTracksEveryGauge(t *testing.T) {
	rec := record(t, 10)
	if rec.Samples() != 10 {
		t.Fatalf("samples = %d, want 10", rec.Samples())
	}
	for i, s := range rec.Series() {
		if len(s) != 10 {
			t.Errorf("gauge %d series length = %d, want 10", i, len(s))
		}
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	rec := record(t, 5)
	data := BuildRunData("calm", 1, 0.016, 0.08, 5, map[string]float64{"energy": 1.5}, rec)

	path := filepath.Join(t.TempDir(), "run.json")
	if err := WriteJSON(path, data); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got RunData
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Preset != "calm" || got.Steps != 5 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if len(got.Series) != 5 || len(got.Series[0]) != 5 {
		t.Errorf("series shape = %dx%d, want 5x5", len(got.Series), len(got.Series[0]))
	}
	if got.Metrics["energy"] != 1.5 {
		t.Errorf("metrics lost: %v", got.Metrics)
	}
}

func TestWriteCSVHasHeaderAndRows(t *testing.T) {
	rec := record(t, 4)
	path := filepath.Join(t.TempDir(), "gauges.csv")
	if err := WriteCSV(path, rec); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header + 4 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "time,") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestWriteCSVRejectsCustomGauges(t *testing.T) {
	rec := NewRecorder([]Gauge{{Name: "only", X: 0, Z: 0}})
	if err := WriteCSV(filepath.Join(t.TempDir(), "x.csv"), rec); err == nil {
		t.Fatal("expected error for non-default gauge set")
	}
}

func TestWriteSVGProducesPolyline(t *testing.T) {
	rec := record(t, 20)
	path := filepath.Join(t.TempDir(), "trace.svg")
	if err := WriteSVG(path, rec, 640, 240); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	raw, _ := os.ReadFile(path)
	s := string(raw)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "<polyline") {
		t.Errorf("svg missing elements: %s", s[:min(len(s), 120)])
	}
}

func TestSeriesToSVGEmptyInput(t *testing.T) {
	if got := SeriesToSVG(nil, nil, 100, 100); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
