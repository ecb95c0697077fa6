package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/raster"
	"github.com/san-kum/sortviz/internal/visual"
	"gopkg.in/yaml.v3"
)

const (
	DefaultName      = "sort"
	DefaultAlgorithm = "bubble"
	DefaultCount     = 19
	DefaultBarWidth  = 8
	DefaultHeight    = 512
	DefaultMargin    = 24
	DefaultMarginTop = 32
	DefaultSpacing   = 2
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Name      string       `yaml:"name"`
	Algorithm string       `yaml:"algorithm"`
	Count     int          `yaml:"count"`
	Seed      uint64       `yaml:"seed"`
	Workers   int          `yaml:"workers"`
	Render    RenderConfig `yaml:"render"`
}

type RenderConfig struct {
	BarWidth   int              `yaml:"bar_width"`
	Height     int              `yaml:"height"`
	Margin     int              `yaml:"margin"`
	MarginTop  int              `yaml:"margin_top"`
	Spacing    int              `yaml:"spacing"`
	Background palette.Color    `yaml:"background"`
	Gradient   palette.Gradient `yaml:"gradient"`
}

func DefaultConfig() *Config {
	classic := Presets["classic"]
	return &Config{
		Name:      DefaultName,
		Algorithm: DefaultAlgorithm,
		Count:     DefaultCount,
		Workers:   visual.DefaultCapacity,
		Render: RenderConfig{
			BarWidth:   DefaultBarWidth,
			Height:     DefaultHeight,
			Margin:     DefaultMargin,
			MarginTop:  DefaultMarginTop,
			Spacing:    DefaultSpacing,
			Background: classic.Background,
			Gradient:   append(palette.Gradient(nil), classic.Gradient...),
		},
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

// Raster converts the render section into the rasterizer's configuration.
func (r RenderConfig) Raster() raster.Config {
	return raster.Config{
		BarWidth:    r.BarWidth,
		ChartHeight: r.Height,
		Margin:      r.Margin,
		MarginTop:   r.MarginTop,
		Spacing:     r.Spacing,
		Background:  r.Background,
		Gradient:    r.Gradient,
	}
}

func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalid)
	}
	if c.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalid, c.Count)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if err := c.Render.Raster().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
