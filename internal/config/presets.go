package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/abortcalc/internal/engine"
	"github.com/san-kum/abortcalc/internal/margin"
)

// preset builds a config whose output is already solved from the other four.
func preset(output margin.Quantity, angle, buffer, time, speed, radius float64) *Config {
	vals := margin.Values{
		margin.Angle:  angle,
		margin.Buffer: buffer,
		margin.Time:   time,
		margin.Speed:  speed,
		margin.Radius: radius,
	}
	st, err := engine.NewState(vals, engine.DefaultRanges(), output)
	if err != nil {
		panic(err)
	}
	if st, err = engine.New(st).SetOutputTarget(output); err != nil {
		panic(err)
	}
	return FromState(st)
}

var Presets = map[string]*Config{
	"default":   DefaultConfig(),
	"taxi":      preset(margin.Buffer, 15.0, 5.0, 3.0, 15.0, 40.0),
	"rollout":   preset(margin.Time, 10.0, 30.0, 5.0, 60.0, 100.0),
	"highspeed": preset(margin.Angle, 5.0, 50.0, 2.0, 150.0, 100.0),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return p.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
