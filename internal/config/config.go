package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
)

const (
	DefaultPreset      = "default"
	DefaultSampleEvery = 100
	DefaultDataDir     = ".turing"
)

type Config struct {
	Preset      string        `yaml:"preset"`
	Size        int           `yaml:"size"`
	Seed        int64         `yaml:"seed"`
	Workers     int           `yaml:"workers"`
	Strict      bool          `yaml:"strict"`
	Params      dynamo.Params `yaml:"params"`
	SampleEvery int           `yaml:"sample_every"`
	DataDir     string        `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:      DefaultPreset,
		Size:        dynamo.DefaultSize,
		Params:      dynamo.DefaultParams(),
		SampleEvery: DefaultSampleEvery,
		DataDir:     DefaultDataDir,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base. A preset named in the file
// is applied first so that explicit params in the same file win over it.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Preset != base.Preset {
		if err := cfg.ApplyPreset(cfg.Preset); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyPreset replaces the kinetic parameters with the named preset. tmax and
// the numerical settings are taken from the preset too.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset %q", name)
	}
	c.Preset = name
	c.Params = p.Params
	return nil
}

func (c *Config) Validate() error {
	if c.Size <= 0 {
		return &dynamo.ParamError{Name: "size", Value: float64(c.Size), Reason: "must be positive"}
	}
	if c.Workers < 0 {
		return &dynamo.ParamError{Name: "workers", Value: float64(c.Workers), Reason: "must not be negative"}
	}
	if c.SampleEvery <= 0 {
		return &dynamo.ParamError{Name: "sample_every", Value: float64(c.SampleEvery), Reason: "must be positive"}
	}
	if c.Preset != "" && GetPreset(c.Preset) == nil {
		return fmt.Errorf("unknown preset %q", c.Preset)
	}
	return c.Params.Validate()
}

func (c *Config) SimParams() dynamo.Params {
	return c.Params
}

// SimConfig is the controller configuration described by c.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Size:    c.Size,
		Params:  c.Params,
		Seed:    c.Seed,
		Workers: c.Workers,
		Strict:  c.Strict,
	}
}
