package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/oceansim/internal/config"
	"github.com/san-kum/oceansim/internal/engine"
	"github.com/san-kum/oceansim/internal/export"
	"github.com/san-kum/oceansim/internal/metrics"
	"github.com/san-kum/oceansim/internal/spectral"
	"github.com/san-kum/oceansim/internal/viz"
)

var (
	dt         float64
	duration   float64
	seed       int64
	configFile string
	preset     string
	withBody   bool
	dropEvery  float64
	jsonOut    string
	csvOut     string
	svgOut     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oceansim",
		Short: "interactive ocean surface simulation",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and report metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.016, "frame timestep")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "simulated duration (s)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 keeps the config's)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "preset configuration")
	runCmd.Flags().BoolVar(&withBody, "body", false, "drive a circling sphere through the water")
	runCmd.Flags().Float64Var(&dropEvery, "drop-every", 2.0, "seconds between surface drops (0 disables)")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write run data to this JSON file")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write gauge series to this CSV file")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write center-gauge trace to this SVG file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0.016, "frame timestep")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "preset configuration")
	liveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 keeps the config's)")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "print the wave spectrum and synthesizer components",
		RunE:  showSpectrum,
	}
	spectrumCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	spectrumCmd.Flags().StringVar(&preset, "preset", "", "preset configuration")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure simulation throughput",
		RunE:  runBench,
	}
	benchCmd.Flags().Float64Var(&dt, "dt", 0.016, "frame timestep")
	benchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	benchCmd.Flags().StringVar(&preset, "preset", "", "preset configuration")

	rootCmd.AddCommand(runCmd, liveCmd, spectrumCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (try: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.DefaultConfig()
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	rec := export.NewRecorder(export.DefaultGauges(cfg.Heightfield.WorldSize))
	observers := []metrics.Metric{
		metrics.NewEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewMaxCrest(),
		metrics.NewFoamCoverage(0.1),
	}

	steps := int(duration / dt)
	nextDrop := 0.0
	bodyPos := engine.Vec3{X: cfg.Heightfield.WorldSize / 4, Y: 0.2}
	angle := 0.0

	start := time.Now()
	for i := 0; i < steps; i++ {
		if dropEvery > 0 && eng.Time() >= nextDrop {
			eng.AddDrop(0, 0, 1.2, 8)
			nextDrop += dropEvery
		}
		if withBody {
			r := cfg.Heightfield.WorldSize / 4
			angle += dt * 0.6
			next := engine.Vec3{
				X: r * math.Cos(angle),
				Y: 0.2,
				Z: r * math.Sin(angle),
			}
			eng.MoveSphere(bodyPos, next, 1.0)
			bodyPos = next
		}

		eng.Step(dt)
		rec.Observe(eng)
		for _, m := range observers {
			m.Observe(eng)
		}
	}
	elapsed := time.Since(start)

	summary := make(map[string]float64, len(observers))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", steps)
	fmt.Fprintf(w, "simulated\t%.2f s\n", eng.Time())
	fmt.Fprintf(w, "wall\t%s\n", elapsed.Round(time.Millisecond))
	for _, m := range observers {
		summary[m.Name()] = m.Value()
		fmt.Fprintf(w, "%s\t%.6g\n", m.Name(), m.Value())
	}
	fmt.Fprintf(w, "spray active\t%d\n", eng.SpraySystem().ActiveCount())
	w.Flush()

	if jsonOut != "" {
		data := export.BuildRunData(preset, cfg.Seed, dt, eng.Time(), steps, summary, rec)
		if err := export.WriteJSON(jsonOut, data); err != nil {
			return err
		}
		fmt.Println("wrote", jsonOut)
	}
	if csvOut != "" {
		if err := export.WriteCSV(csvOut, rec); err != nil {
			return err
		}
		fmt.Println("wrote", csvOut)
	}
	if svgOut != "" {
		if err := export.WriteSVG(svgOut, rec, 800, 300); err != nil {
			return err
		}
		fmt.Println("wrote", svgOut)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	name := preset
	if name == "" {
		name = "default"
	}
	return viz.Run(eng, name, dt)
}

func showSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := spectral.Params{
		WindSpeed:      cfg.Wind.Speed,
		WindDirection:  cfg.Wind.Direction,
		Fetch:          cfg.Wind.Fetch,
		AmplitudeScale: cfg.Wind.GerstnerAmplitude,
		Gravity:        cfg.Heightfield.Gravity,
	}

	fmt.Printf("wind %.1f m/s @ %.0f°, fetch %.0f km\n", p.WindSpeed, p.WindDirection, p.Fetch/1000)
	fmt.Printf("peak omega %.4f rad/s, alpha %.6f\n\n", p.PeakOmega(), p.Alpha())

	omegas := p.SampleOmegas(48)
	density := make([]float64, len(omegas))
	for i, w := range omegas {
		density[i] = p.Density(w)
	}
	fmt.Println(asciigraph.Plot(density,
		asciigraph.Height(10),
		asciigraph.Width(64),
		asciigraph.Caption("S(omega) over the sampled band"),
	))
	fmt.Println()

	synth := spectral.NewSynth(p, spectral.RenderComponents, cfg.Wind.GerstnerSteepness)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tamplitude\tomega\tk\tdir\tspeed mul")
	for i, c := range synth.Components() {
		fmt.Fprintf(w, "%d\t%.4f\t%.3f\t%.3f\t(%.2f, %.2f)\t%.2f\n",
			i, c.Amplitude, c.Omega, c.K, c.DirX, c.DirZ, c.SpeedMul)
	}
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	const warmup = 10
	const measured = 120
	for i := 0; i < warmup; i++ {
		eng.Step(dt)
	}
	start := time.Now()
	for i := 0; i < measured; i++ {
		eng.Step(dt)
	}
	elapsed := time.Since(start)

	perStep := elapsed / measured
	fmt.Printf("backend: %s\n", eng.Backend().Name())
	fmt.Printf("resolution: %d\n", cfg.Heightfield.Resolution)
	fmt.Printf("%d steps in %s (%.2f ms/step, %.1f steps/s)\n",
		measured, elapsed.Round(time.Millisecond),
		float64(perStep.Microseconds())/1000,
		float64(time.Second)/float64(perStep))
	return nil
}
