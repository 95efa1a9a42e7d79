package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultResolution = 256
	DefaultWorldSize  = 40.0
	DefaultDepth      = 1.0
	DefaultGravity    = 9.81
	DefaultDamping    = 0.9985

	DefaultSheetResolution = 128
	DefaultSprayMax        = 512
	DefaultFoamDecay       = 0.35
)

type Config struct {
	Seed        int64             `yaml:"seed"`
	Heightfield HeightfieldConfig `yaml:"heightfield"`
	Sheet       SheetConfig       `yaml:"sheet"`
	Spray       SprayConfig       `yaml:"spray"`
	Foam        FoamConfig        `yaml:"foam"`
	Hull        HullConfig        `yaml:"hull"`
	Wind        WindConfig        `yaml:"wind"`
}

type HeightfieldConfig struct {
	Resolution int     `yaml:"resolution"`
	WorldSize  float64 `yaml:"world_size"`
	Depth      float64 `yaml:"depth"`
	Gravity    float64 `yaml:"gravity"`
	Damping    float64 `yaml:"damping"`
}

type SheetConfig struct {
	Resolution       int     `yaml:"resolution"`
	WorldSize        float64 `yaml:"world_size"`
	BreakRate        float64 `yaml:"break_rate"`
	HealRate         float64 `yaml:"heal_rate"`
	WaveStrainThresh float64 `yaml:"wave_strain_thresh"`
	WaveBreakRate    float64 `yaml:"wave_break_rate"`
	Viscosity        float64 `yaml:"viscosity"`
	Damping          float64 `yaml:"damping"`
	HFCoupling       float64 `yaml:"hf_coupling"`
	MinThick         float64 `yaml:"min_thick"`
	MaxThick         float64 `yaml:"max_thick"`
	RedistRate       float64 `yaml:"redist_rate"`
	HullStiffness    float64 `yaml:"hull_stiffness"`
	BarrierStiffness float64 `yaml:"barrier_stiffness"`
	SlapDamping      float64 `yaml:"slap_damping"`
}

type SprayConfig struct {
	Max      int     `yaml:"max"`
	Lifetime float64 `yaml:"lifetime"`
	MinVY    float64 `yaml:"min_vy"`
	Gravity  float64 `yaml:"gravity"`
	Drag     float64 `yaml:"drag"`
}

type FoamConfig struct {
	Decay      float64 `yaml:"decay"`
	EdgeGen    float64 `yaml:"edge_gen"`
	MaxDensity float64 `yaml:"max_density"`
}

type HullConfig struct {
	Feedback float64 `yaml:"feedback"`
}

type WindConfig struct {
	Speed             float64 `yaml:"speed"`     // m/s
	Direction         float64 `yaml:"direction"` // degrees
	Fetch             float64 `yaml:"fetch"`     // m
	GerstnerAmplitude float64 `yaml:"gerstner_amplitude"`
	GerstnerSteepness float64 `yaml:"gerstner_steepness"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed: 1,
		Heightfield: HeightfieldConfig{
			Resolution: DefaultResolution,
			WorldSize:  DefaultWorldSize,
			Depth:      DefaultDepth,
			Gravity:    DefaultGravity,
			Damping:    DefaultDamping,
		},
		Sheet: SheetConfig{
			Resolution:       DefaultSheetResolution,
			WorldSize:        DefaultWorldSize,
			BreakRate:        1.0,
			HealRate:         0.4,
			WaveStrainThresh: 1.2,
			WaveBreakRate:    2.0,
			Viscosity:        0.15,
			Damping:          0.97,
			HFCoupling:       1.0,
			MinThick:         0.05,
			MaxThick:         2.0,
			RedistRate:       0.2,
			HullStiffness:    3.0,
			BarrierStiffness: 8.0,
			SlapDamping:      1.5,
		},
		Spray: SprayConfig{
			Max:      DefaultSprayMax,
			Lifetime: 1.8,
			MinVY:    0.6,
			Gravity:  9.81,
			Drag:     1.2,
		},
		Foam: FoamConfig{
			Decay:      DefaultFoamDecay,
			EdgeGen:    1.5,
			MaxDensity: 3,
		},
		Hull: HullConfig{
			Feedback: 0.5,
		},
		Wind: WindConfig{
			Speed:             8,
			Direction:         25,
			Fetch:             80000,
			GerstnerAmplitude: 1.0,
			GerstnerSteepness: 0.6,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the engine cannot be constructed from.
func (c *Config) Validate() error {
	if c.Heightfield.Resolution < 8 {
		return fmt.Errorf("heightfield resolution %d too small", c.Heightfield.Resolution)
	}
	if c.Sheet.Resolution < 8 {
		return fmt.Errorf("sheet resolution %d too small", c.Sheet.Resolution)
	}
	if c.Heightfield.WorldSize <= 0 {
		return fmt.Errorf("world size must be positive, got %f", c.Heightfield.WorldSize)
	}
	if c.Heightfield.Depth <= 0 {
		return fmt.Errorf("depth must be positive, got %f", c.Heightfield.Depth)
	}
	if c.Heightfield.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %f", c.Heightfield.Gravity)
	}
	if c.Sheet.MinThick > c.Sheet.MaxThick {
		return fmt.Errorf("sheet thickness bounds inverted: [%f,%f]", c.Sheet.MinThick, c.Sheet.MaxThick)
	}
	if c.Spray.Max < 1 {
		return fmt.Errorf("spray pool size must be at least 1, got %d", c.Spray.Max)
	}
	return nil
}
