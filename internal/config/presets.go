package config

import "sort"

// preset mutates a default config in place.
type preset func(*Config)

var presets = map[string]preset{
	"baseline": func(c *Config) {},
	"aggressive": func(c *Config) {
		c.Controller.Gains = []float64{30, 22, 18, 12, 60, 8}
		c.Cost.Weights.Control = 0.002
		c.Cost.Weights.ControlRate = 0.0005
	},
	"gentle": func(c *Config) {
		c.Controller.Gains = []float64{12, 9, 8, 5, 20, 3}
		c.Cost.Weights.Control = 0.05
		c.Cost.Weights.ControlRate = 0.01
	},
	"adaptive": func(c *Config) {
		c.Controller.Type = "adaptive"
		c.Controller.Gains = []float64{20, 15, 12, 8, 4}
	},
	"sta": func(c *Config) {
		c.Controller.Type = "sta"
		c.Controller.Gains = []float64{25, 10, 20, 15, 12, 8}
	},
	"hybrid": func(c *Config) {
		c.Controller.Type = "hybrid"
		c.Controller.Gains = []float64{18, 10, 12, 6}
	},
	"tune_fast": func(c *Config) {
		c.PSO.SwarmSize = 15
		c.PSO.Iterations = 20
		c.Scenarios.Count = 6
	},
	"tune_thorough": func(c *Config) {
		c.PSO.SwarmSize = 50
		c.PSO.Iterations = 120
		c.Scenarios.Count = 24
		c.Cost.WorstWeight = 0.5
	},
}

// GetPreset returns a full config with the named preset applied, or nil if
// the preset is unknown.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
