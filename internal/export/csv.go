package export

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// GaugeRow is one CSV line: time plus every gauge's elevation.
type GaugeRow struct {
	Time   float64 `csv:"time"`
	Center float64 `csv:"center"`
	East   float64 `csv:"east"`
	West   float64 `csv:"west"`
	North  float64 `csv:"north"`
	South  float64 `csv:"south"`
}

// WriteCSV writes the recorder's series as one row per sample. The
// recorder must carry the five default gauges.
func WriteCSV(path string, rec *Recorder) error {
	if len(rec.Gauges()) != 5 {
		return fmt.Errorf("csv export expects the 5 default gauges, got %d", len(rec.Gauges()))
	}

	rows := make([]*GaugeRow, rec.Samples())
	s := rec.Series()
	for i, t := range rec.Times() {
		rows[i] = &GaugeRow{
			Time:   t,
			Center: s[0][i],
			East:   s[1][i],
			West:   s[2][i],
			North:  s[3][i],
			South:  s[4][i],
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalFile(&rows, file)
}
