package export

import (
	"fmt"
	"os"
	"strings"
)

// SeriesToSVG renders one gauge's elevation trace as an SVG polyline.
func SeriesToSVG(times, values []float64, width, height int) string {
	if len(times) < 2 || len(times) != len(values) {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	span := maxV - minV
	if span == 0 {
		span = 1
	}
	minV -= span * 0.1
	span *= 1.2

	t0 := times[0]
	tSpan := times[len(times)-1] - t0
	if tSpan == 0 {
		tSpan = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a1a"/>
<polyline fill="none" stroke="#4fc3f7" stroke-width="1.5" points="`, width, height, width, height))

	for i, t := range times {
		px := (t - t0) / tSpan * float64(width)
		py := float64(height) - (values[i]-minV)/span*float64(height)
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

// WriteSVG renders the first gauge's trace to a file.
func WriteSVG(path string, rec *Recorder, width, height int) error {
	if rec.Samples() < 2 {
		return fmt.Errorf("svg export needs at least 2 samples")
	}
	svg := SeriesToSVG(rec.Times(), rec.Series()[0], width, height)
	return os.WriteFile(path, []byte(svg), 0644)
}
