package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/glowgrid/internal/animator"
	"github.com/san-kum/glowgrid/internal/grid"
	"github.com/san-kum/glowgrid/internal/render"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRows       = 38
	DefaultCols       = 38
	DefaultBackground = "black"
	DefaultStroke     = "white"
	DefaultIntervalMs = 100
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Rows       int        `yaml:"rows"`
	Cols       int        `yaml:"cols"`
	Background string     `yaml:"background"`
	Stroke     string     `yaml:"stroke"`
	IntervalMs int        `yaml:"interval_ms"`
	Wave       WaveConfig `yaml:"wave"`
}

// WaveConfig mirrors grid.Wave; divisors are in milliseconds.
type WaveConfig struct {
	Offset float64 `yaml:"offset"`
	RDiv   float64 `yaml:"r_div"`
	GDiv   float64 `yaml:"g_div"`
	BDiv   float64 `yaml:"b_div"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:       DefaultRows,
		Cols:       DefaultCols,
		Background: DefaultBackground,
		Stroke:     DefaultStroke,
		IntervalMs: DefaultIntervalMs,
		Wave: WaveConfig{
			Offset: grid.DefaultOffset,
			RDiv:   grid.DefaultRDiv,
			GDiv:   grid.DefaultGDiv,
			BDiv:   grid.DefaultBDiv,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: rows and cols must be positive, got %dx%d", ErrInvalidConfig, c.Rows, c.Cols)
	}
	if c.IntervalMs <= 0 {
		return fmt.Errorf("%w: interval_ms must be positive, got %d", ErrInvalidConfig, c.IntervalMs)
	}
	if err := c.GetWave().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.GetPalette(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

func (c *Config) GetWave() grid.Wave {
	return grid.Wave{
		Offset: c.Wave.Offset,
		RDiv:   c.Wave.RDiv,
		GDiv:   c.Wave.GDiv,
		BDiv:   c.Wave.BDiv,
	}
}

func (c *Config) GetPalette() (render.Palette, error) {
	return render.NewPalette(c.Background, c.Stroke)
}

func (c *Config) GetAnimatorConfig() animator.Config {
	return animator.Config{
		Interval: c.Interval(),
		Wave:     c.GetWave(),
	}
}
