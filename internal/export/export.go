package export

import (
	"encoding/json"
	"os"
	"time"
)

type RunData struct {
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
	Gauges    []string           `json:"gauges"`
	Times     []float64          `json:"times"`
	Series    [][]float64        `json:"series"`
}

func BuildRunData(preset string, seed int64, dt, duration float64, steps int, metrics map[string]float64, rec *Recorder) RunData {
	names := make([]string, len(rec.Gauges()))
	for i, g := range rec.Gauges() {
		names[i] = g.Name
	}
	return RunData{
		Preset:    preset,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Duration:  duration,
		Steps:     steps,
		Metrics:   metrics,
		Gauges:    names,
		Times:     rec.Times(),
		Series:    rec.Series(),
	}
}

func WriteJSON(path string, data RunData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
