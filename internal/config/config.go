package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/ballistic/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 20
	DefaultFormat = "ascii"
)

var DefaultMethods = []string{"euler", "rk4"}

type Config struct {
	Preset  string        `yaml:"preset,omitempty"`
	Methods []string      `yaml:"methods"`
	Params  dynamo.Params `yaml:"params"`
	Render  RenderConfig  `yaml:"render"`
}

type RenderConfig struct {
	Format string `yaml:"format"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Methods: append([]string(nil), DefaultMethods...),
		Params:  dynamo.DefaultParams(),
		Render: RenderConfig{
			Format: DefaultFormat,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

// Load reads a YAML config. A preset named in the file is applied first and
// the file's own values are layered on top.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	return Overlay(nil, data)
}

// Overlay decodes data on top of base (DefaultConfig when nil). A preset named
// in data replaces base before the remaining fields are applied.
func Overlay(base *Config, data []byte) (*Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := DefaultConfig()
	if base != nil {
		cfg = base.Clone()
	}
	if head.Preset != "" {
		cfg = GetPreset(head.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", head.Preset, ListPresets())
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
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
	if len(c.Methods) == 0 {
		return fmt.Errorf("config: at least one method is required")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("config: render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	return c.Params.Validate()
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Methods = append([]string(nil), c.Methods...)
	return &cp
}
