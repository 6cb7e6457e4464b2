package config

var Presets = map[string]*Config{
	// The textbook descent: unit-scaled drop with moderate drag.
	"classic": {
		Intervals: 40, Friction: 0.1,
		Finish: PointConfig{X: 2, Y: 2},
	},
	"frictionless": {
		Intervals: 40, Friction: 0,
		Finish: PointConfig{X: 2, Y: 2},
	},
	// Long shallow run where drag dominates the shape.
	"shallow": {
		Intervals: 60, Friction: 0.3,
		Finish: PointConfig{X: 5, Y: 1},
	},
	// Near-vertical drop with a running start.
	"steep": {
		Intervals: 30, Friction: 0.05,
		Start:  PointConfig{V: 0.5},
		Finish: PointConfig{X: 0.5, Y: 3},
	},
	// Coarse grid for quick Jacobian sanity checks.
	"coarse": {
		Intervals: 5, Friction: 0.1,
		Finish: PointConfig{X: 2, Y: 2},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
