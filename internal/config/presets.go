package config

import (
	"sort"

	"github.com/san-kum/ballistic/internal/dynamo"
)

func preset(name string, tweak func(p *dynamo.Params)) *Config {
	cfg := DefaultConfig()
	cfg.Preset = name
	tweak(&cfg.Params)
	return cfg
}

var Presets = map[string]*Config{
	"classic": preset("classic", func(p *dynamo.Params) {}),
	"coarse": preset("coarse", func(p *dynamo.Params) {
		p.TimeStep = 0.1
	}),
	"steep": preset("steep", func(p *dynamo.Params) {
		p.LaunchAngleDeg = 75
	}),
	"lob": preset("lob", func(p *dynamo.Params) {
		p.InitialSpeed = 35
		p.LaunchAngleDeg = 60
		p.TimeStep = 0.01
	}),
	"ledge": preset("ledge", func(p *dynamo.Params) {
		p.LaunchAngleDeg = 10
		p.Y0 = 15
		p.TimeStep = 0.01
	}),
	"cutoff": preset("cutoff", func(p *dynamo.Params) {
		p.MaxTime = 1
	}),
	"moon": preset("moon", func(p *dynamo.Params) {
		p.Gravity = 1.62
		p.MaxTime = 30
		p.TimeStep = 0.01
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
