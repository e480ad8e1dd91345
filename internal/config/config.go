package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/cost"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/plant"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/pso"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/scenario"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/sim"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/smc"
)

type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Plant      PlantConfig      `yaml:"plant"`
	Sim        SimConfig        `yaml:"sim"`
	Cost       CostConfig       `yaml:"cost"`
	Scenarios  scenario.Config  `yaml:"scenarios"`
	PSO        pso.Config       `yaml:"pso"`
}

type ControllerConfig struct {
	Type  string    `yaml:"type"`
	Gains []float64 `yaml:"gains,omitempty"`

	MaxForce      float64 `yaml:"max_force"`
	BoundaryLayer float64 `yaml:"boundary_layer"`
	InitialGain   float64 `yaml:"initial_gain"`
	AdaptLeak     float64 `yaml:"adapt_leak"`
	DeadZone      float64 `yaml:"dead_zone"`
	GainCeiling   float64 `yaml:"gain_ceiling"`
}

type PlantConfig struct {
	CartMass  float64 `yaml:"cart_mass"`
	Mass1     float64 `yaml:"mass1"`
	Mass2     float64 `yaml:"mass2"`
	Length1   float64 `yaml:"length1"`
	Length2   float64 `yaml:"length2"`
	Gravity   float64 `yaml:"gravity"`
	FrictCart float64 `yaml:"frict_cart"`
	FrictJnt1 float64 `yaml:"frict_jnt1"`
	FrictJnt2 float64 `yaml:"frict_jnt2"`
}

type SimConfig struct {
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	DivergeNorm float64 `yaml:"diverge_norm"`
	TimeoutSec  float64 `yaml:"timeout_sec"`
}

type CostConfig struct {
	Weights     cost.Weights `yaml:"weights"`
	Penalty     float64      `yaml:"penalty"`
	WorstWeight float64      `yaml:"worst_weight"`
	Workers     int          `yaml:"workers"`
}

func DefaultConfig() *Config {
	p := plant.DefaultParams()
	opts := smc.DefaultOptions()
	s := sim.DefaultConfig()
	return &Config{
		Controller: ControllerConfig{
			Type:          "classical",
			Gains:         []float64{20, 15, 12, 8, 35, 5},
			MaxForce:      opts.MaxForce,
			BoundaryLayer: opts.BoundaryLayer,
			InitialGain:   opts.InitialGain,
			AdaptLeak:     opts.AdaptLeak,
			DeadZone:      opts.DeadZone,
			GainCeiling:   opts.GainCeiling,
		},
		Plant: PlantConfig{
			CartMass:  p.CartMass,
			Mass1:     p.Mass1,
			Mass2:     p.Mass2,
			Length1:   p.Length1,
			Length2:   p.Length2,
			Gravity:   p.Gravity,
			FrictCart: p.FrictCart,
			FrictJnt1: p.FrictJnt1,
			FrictJnt2: p.FrictJnt2,
		},
		Sim: SimConfig{
			Dt:          s.Dt,
			Duration:    s.Duration,
			DivergeNorm: s.DivergeNorm,
		},
		Cost: CostConfig{
			Weights:     cost.DefaultWeights(),
			Penalty:     cost.DefaultPenalty,
			WorstWeight: 0.2,
		},
		Scenarios: scenario.DefaultConfig(),
		PSO:       pso.DefaultConfig(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
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

func (c *Config) Validate() error {
	t, err := smc.ParseType(c.Controller.Type)
	if err != nil {
		return err
	}
	if c.Controller.Gains != nil {
		if err := smc.ValidateGains(t, c.Controller.Gains); err != nil {
			return err
		}
	}
	if err := c.ToSimConfig().Validate(); err != nil {
		return err
	}
	if err := c.Scenarios.Validate(); err != nil {
		return err
	}
	return c.PSO.Validate()
}

func (c *Config) ControllerType() (smc.Type, error) {
	return smc.ParseType(c.Controller.Type)
}

func (c *Config) ToOptions() smc.Options {
	opts := smc.DefaultOptions()
	opts.MaxForce = c.Controller.MaxForce
	opts.BoundaryLayer = c.Controller.BoundaryLayer
	opts.InitialGain = c.Controller.InitialGain
	opts.AdaptLeak = c.Controller.AdaptLeak
	opts.DeadZone = c.Controller.DeadZone
	opts.GainCeiling = c.Controller.GainCeiling
	opts.Dt = c.Sim.Dt
	return opts
}

func (c *Config) ToPlantParams() plant.Params {
	return plant.Params{
		CartMass:  c.Plant.CartMass,
		Mass1:     c.Plant.Mass1,
		Mass2:     c.Plant.Mass2,
		Length1:   c.Plant.Length1,
		Length2:   c.Plant.Length2,
		Gravity:   c.Plant.Gravity,
		FrictCart: c.Plant.FrictCart,
		FrictJnt1: c.Plant.FrictJnt1,
		FrictJnt2: c.Plant.FrictJnt2,
	}
}

func (c *Config) ToSimConfig() sim.Config {
	return sim.Config{
		Dt:          c.Sim.Dt,
		Duration:    c.Sim.Duration,
		DivergeNorm: c.Sim.DivergeNorm,
		Timeout:     time.Duration(c.Sim.TimeoutSec * float64(time.Second)),
	}
}
