package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/abortcalc/internal/engine"
	"github.com/san-kum/abortcalc/internal/margin"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingQuantity = errors.New("config: quantity missing")
	ErrUnknownPreset   = errors.New("config: unknown preset")
)

type Config struct {
	Output     string                    `yaml:"output"`
	Quantities map[string]QuantityConfig `yaml:"quantities"`
}

type QuantityConfig struct {
	Value float64 `yaml:"value"`
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
}

// quantityPatch lets a file override single fields of a quantity.
type quantityPatch struct {
	Value *float64 `yaml:"value"`
	Start *float64 `yaml:"start"`
	Stop  *float64 `yaml:"stop"`
	Step  *float64 `yaml:"step"`
}

type fileConfig struct {
	Output     string                   `yaml:"output"`
	Quantities map[string]quantityPatch `yaml:"quantities"`
}

func DefaultConfig() *Config {
	return FromState(engine.DefaultState())
}

// FromState captures a snapshot as a config.
func FromState(s engine.State) *Config {
	cfg := &Config{
		Output:     s.Output().Name(),
		Quantities: make(map[string]QuantityConfig, margin.Count),
	}
	for _, q := range margin.All {
		rec := s.Record(q)
		cfg.Quantities[q.Name()] = QuantityConfig{
			Value: rec.Value,
			Start: rec.Range.Start,
			Stop:  rec.Range.Stop,
			Step:  rec.Range.Step,
		}
	}
	return cfg
}

// Load reads a YAML file and applies it over the defaults. Quantity keys may
// be symbols ("θ", "b"), names ("angle", "buffer") or "theta".
func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver reads a YAML file and applies it over base. base is not modified.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Overlay(base, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Overlay applies a YAML document to a copy of base. Fields absent from the
// document keep base's values.
func Overlay(base *Config, data []byte) (*Config, error) {
	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if raw.Output != "" {
		q, err := margin.ParseQuantity(raw.Output)
		if err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
		cfg.Output = q.Name()
	}
	for key, patch := range raw.Quantities {
		q, err := margin.ParseQuantity(key)
		if err != nil {
			return nil, fmt.Errorf("quantities: %w", err)
		}
		cur := cfg.Quantities[q.Name()]
		if patch.Value != nil {
			cur.Value = *patch.Value
		}
		if patch.Start != nil {
			cur.Start = *patch.Start
		}
		if patch.Stop != nil {
			cur.Stop = *patch.Stop
		}
		if patch.Step != nil {
			cur.Step = *patch.Step
		}
		cfg.Quantities[q.Name()] = cur
	}
	if _, err := cfg.State(); err != nil {
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

func (c *Config) Clone() *Config {
	cp := &Config{Output: c.Output, Quantities: make(map[string]QuantityConfig, len(c.Quantities))}
	for k, v := range c.Quantities {
		cp.Quantities[k] = v
	}
	return cp
}

// State builds the startup snapshot described by the config.
func (c *Config) State() (engine.State, error) {
	output, err := margin.ParseQuantity(c.Output)
	if err != nil {
		return engine.State{}, fmt.Errorf("output: %w", err)
	}
	var values margin.Values
	var ranges [margin.Count]engine.Range
	for _, q := range margin.All {
		qc, ok := c.Quantities[q.Name()]
		if !ok {
			return engine.State{}, fmt.Errorf("%w: %s", ErrMissingQuantity, q.Name())
		}
		values[q] = qc.Value
		ranges[q] = engine.Range{Start: qc.Start, Stop: qc.Stop, Step: qc.Step}
	}
	return engine.NewState(values, ranges, output)
}
