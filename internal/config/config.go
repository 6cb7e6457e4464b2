package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/trajopt/internal/problem"
)

const (
	DefaultIntervals = 40
	DefaultFriction  = 0.1
	DefaultFinishX   = 2.0
	DefaultFinishY   = 2.0
)

type Config struct {
	Intervals int         `yaml:"intervals"`
	T0        float64     `yaml:"t0"`
	Friction  float64     `yaml:"friction"`
	TfGuess   float64     `yaml:"tf_guess"`
	Start     PointConfig `yaml:"start"`
	Finish    PointConfig `yaml:"finish"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	V float64 `yaml:"v"`
}

func DefaultConfig() *Config {
	return &Config{
		Intervals: DefaultIntervals,
		Friction:  DefaultFriction,
		Finish:    PointConfig{X: DefaultFinishX, Y: DefaultFinishY},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
	if c.Intervals <= 0 {
		return fmt.Errorf("intervals must be positive, got %d", c.Intervals)
	}
	if c.Friction < 0 {
		return fmt.Errorf("friction must be non-negative, got %f", c.Friction)
	}
	if c.TfGuess != 0 && c.TfGuess <= c.T0 {
		return fmt.Errorf("tf_guess %f must exceed t0 %f", c.TfGuess, c.T0)
	}
	return nil
}

// Definition converts the file-facing config into a problem definition.
func (c *Config) Definition() problem.Definition {
	return problem.Definition{
		N:        c.Intervals,
		T0:       c.T0,
		Friction: c.Friction,
		TfGuess:  c.TfGuess,
		Start:    problem.Start{X: c.Start.X, Y: c.Start.Y, V: c.Start.V},
		Finish:   problem.Finish{X: c.Finish.X, Y: c.Finish.Y},
	}
}
