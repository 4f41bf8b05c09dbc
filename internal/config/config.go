package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/conserve/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultXMin      = -5.0
	DefaultXMax      = 5.0
	DefaultYMin      = -5.0
	DefaultYMax      = 5.0
	DefaultSamples   = 512
	DefaultSliderMin = -5.0
	DefaultSliderMax = 5.0
	DefaultStep      = 0.1
	DefaultWidth     = 3.0
	DefaultFPS       = 60
	DefaultTheme     = "cyberpunk"

	MomentumColor = "#ff0000"
	EnergyColor   = "#0000ff"
)

type Config struct {
	State dynamo.State `yaml:"state"`
	// StateSet is true when the loaded file has a state section.
	StateSet bool `yaml:"-"`


	Plot    PlotConfig   `yaml:"plot"`
	Slider  SliderConfig `yaml:"slider"`
	Style   StyleConfig  `yaml:"style"`
	Theme   string       `yaml:"theme"`
	FPS     int          `yaml:"fps"`
	Persist bool         `yaml:"persist"`
}

type PlotConfig struct {
	XMin    float64 `yaml:"x_min"`
	XMax    float64 `yaml:"x_max"`
	YMin    float64 `yaml:"y_min"`
	YMax    float64 `yaml:"y_max"`
	Samples int     `yaml:"samples"`
}

type SliderConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

type StyleConfig struct {
	Momentum dynamo.Style `yaml:"momentum"`
	Energy   dynamo.Style `yaml:"energy"`
}

func DefaultConfig() *Config {
	return &Config{
		Plot: PlotConfig{
			XMin:    DefaultXMin,
			XMax:    DefaultXMax,
			YMin:    DefaultYMin,
			YMax:    DefaultYMax,
			Samples: DefaultSamples,
		},
		Slider: SliderConfig{
			Min:  DefaultSliderMin,
			Max:  DefaultSliderMax,
			Step: DefaultStep,
		},
		Style: StyleConfig{
			Momentum: dynamo.Style{Color: MomentumColor, Width: DefaultWidth},
			Energy:   dynamo.Style{Color: EnergyColor, Width: DefaultWidth},
		},
		Theme:   DefaultTheme,
		FPS:     DefaultFPS,
		Persist: true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var sections struct {
		State *dynamo.State `yaml:"state"`
	}
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.StateSet = sections.State != nil
	return cfg, nil
}

// Save writes cfg as yaml, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Domain().Validate(); err != nil {
		return err
	}
	if c.Plot.YMin >= c.Plot.YMax {
		return fmt.Errorf("%w: y range [%g, %g]", dynamo.ErrInvalidDomain, c.Plot.YMin, c.Plot.YMax)
	}
	if c.Plot.Samples < 2 {
		return fmt.Errorf("%w: got %d", dynamo.ErrSampleCount, c.Plot.Samples)
	}
	if c.Slider.Min >= c.Slider.Max {
		return fmt.Errorf("%w: slider range [%g, %g]", dynamo.ErrParameterBounds, c.Slider.Min, c.Slider.Max)
	}
	if c.Slider.Step <= 0 {
		return fmt.Errorf("%w: slider step %g", dynamo.ErrParameterBounds, c.Slider.Step)
	}
	return nil
}

// Domain is the initial x-range of the plot.
func (c *Config) Domain() dynamo.Domain {
	return dynamo.Domain{Min: c.Plot.XMin, Max: c.Plot.XMax}
}
