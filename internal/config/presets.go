package config

// Presets are named sea states. Each starts from the defaults and adjusts
// the wind, damping and breaking thresholds.
var Presets = map[string]func() *Config{
	"calm": func() *Config {
		cfg := DefaultConfig()
		cfg.Wind.Speed = 4
		cfg.Wind.Fetch = 30000
		cfg.Wind.GerstnerAmplitude = 0.5
		cfg.Wind.GerstnerSteepness = 0.3
		cfg.Heightfield.Damping = 0.997
		cfg.Foam.Decay = 0.6
		return cfg
	},
	"windy": func() *Config {
		cfg := DefaultConfig()
		cfg.Wind.Speed = 12
		cfg.Wind.Fetch = 120000
		cfg.Wind.GerstnerAmplitude = 1.2
		cfg.Wind.GerstnerSteepness = 0.7
		cfg.Sheet.WaveStrainThresh = 1.0
		return cfg
	},
	"storm": func() *Config {
		cfg := DefaultConfig()
		cfg.Wind.Speed = 22
		cfg.Wind.Fetch = 300000
		cfg.Wind.GerstnerAmplitude = 1.6
		cfg.Wind.GerstnerSteepness = 0.85
		cfg.Heightfield.Damping = 0.9995
		cfg.Sheet.WaveStrainThresh = 0.8
		cfg.Sheet.WaveBreakRate = 3.0
		cfg.Foam.Decay = 0.2
		cfg.Foam.MaxDensity = 4
		return cfg
	},
}

// GetPreset returns a fresh config for a named sea state, or nil when the
// name is unknown.
func GetPreset(name string) *Config {
	f, ok := Presets[name]
	if !ok {
		return nil
	}
	return f()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
