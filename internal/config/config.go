package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rewired-gh/probebar/internal/dataset"
	"github.com/rewired-gh/probebar/internal/models"
	"github.com/rewired-gh/probebar/internal/palette"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Probe   ProbeConfig   `mapstructure:"probe"`
	Scale   ScaleConfig   `mapstructure:"scale"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ProbeConfig holds the slider range for the probe value
type ProbeConfig struct {
	Min     float64 `mapstructure:"min"`
	Max     float64 `mapstructure:"max"`
	Step    float64 `mapstructure:"step"`
	Initial float64 `mapstructure:"initial"`
	Marks   int     `mapstructure:"marks"`
}

// ScaleConfig selects the palettes and how many colors are sampled from each.
// Palettes are either a built-in name ("blues", "reds") or explicit colors.
type ScaleConfig struct {
	Blues      string   `mapstructure:"blues"`
	Reds       string   `mapstructure:"reds"`
	BlueColors []string `mapstructure:"blue_colors"`
	RedColors  []string `mapstructure:"red_colors"`
	BlueStops  int      `mapstructure:"blue_stops"`
	RedStops   int      `mapstructure:"red_stops"`
}

// DatasetConfig holds the synthetic population parameters
type DatasetConfig struct {
	Seed       int64                  `mapstructure:"seed"`
	SampleSize int                    `mapstructure:"sample_size"`
	ZScore     float64                `mapstructure:"z_score"`
	Categories []dataset.Distribution `mapstructure:"categories"`
}

// ChartConfig holds figure layout and rendering options
type ChartConfig struct {
	Title       string  `mapstructure:"title"`
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	YTicks      int     `mapstructure:"y_ticks"`
	LegendTicks int     `mapstructure:"legend_ticks"`
	ErrorWidth  float64 `mapstructure:"error_width"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables. A missing
// file is not an error: defaults and environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Enable environment variable override, e.g. PROBEBAR_SERVER_ADDRESS
	v.SetEnvPrefix("PROBEBAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8050")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")

	// Probe defaults; max matches the top of the y axis
	v.SetDefault("probe.min", 0.0)
	v.SetDefault("probe.max", 51595.8)
	v.SetDefault("probe.step", 100.0)
	v.SetDefault("probe.initial", 40400.0)
	v.SetDefault("probe.marks", 9)

	// Scale defaults
	v.SetDefault("scale.blues", "blues")
	v.SetDefault("scale.reds", "reds")
	v.SetDefault("scale.blue_stops", 6)
	v.SetDefault("scale.red_stops", 5)

	// Dataset defaults
	v.SetDefault("dataset.seed", 12345)
	v.SetDefault("dataset.sample_size", 3650)
	v.SetDefault("dataset.z_score", 1.96)
	v.SetDefault("dataset.categories", []map[string]any{
		{"label": "1992", "mean": 32000.0, "stddev": 200000.0},
		{"label": "1993", "mean": 43000.0, "stddev": 100000.0},
		{"label": "1994", "mean": 43500.0, "stddev": 140000.0},
		{"label": "1995", "mean": 48000.0, "stddev": 70000.0},
	})

	// Chart defaults
	v.SetDefault("chart.title", "Interactive annotation<br>simulation")
	v.SetDefault("chart.width", 690)
	v.SetDefault("chart.height", 630)
	v.SetDefault("chart.y_ticks", 9)
	v.SetDefault("chart.legend_ticks", 12)
	v.SetDefault("chart.error_width", 8.4)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Server config
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read and write timeouts must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}

	// Validate Probe config
	probe := c.ProbeRange()
	if err := probe.Validate(); err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	if c.Probe.Marks < 2 {
		return fmt.Errorf("probe.marks must be at least 2")
	}

	// Validate Scale config
	if c.Scale.BlueStops < 1 || c.Scale.RedStops < 1 {
		return fmt.Errorf("scale.blue_stops and scale.red_stops must be at least 1")
	}
	if c.Scale.BlueStops+c.Scale.RedStops < 3 {
		return fmt.Errorf("scale must have at least 3 stops in total")
	}
	if _, err := c.BluePalette(); err != nil {
		return fmt.Errorf("scale.blues: %w", err)
	}
	if _, err := c.RedPalette(); err != nil {
		return fmt.Errorf("scale.reds: %w", err)
	}

	// Validate Dataset config
	if c.Dataset.ZScore <= 0 {
		return fmt.Errorf("dataset.z_score must be positive")
	}
	params := c.DatasetParams()
	if err := params.Validate(); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	// Validate Chart config
	if c.Chart.Width < 100 || c.Chart.Height < 100 {
		return fmt.Errorf("chart width and height must be at least 100")
	}
	if c.Chart.YTicks < 2 {
		return fmt.Errorf("chart.y_ticks must be at least 2")
	}
	if c.Chart.LegendTicks < 2 {
		return fmt.Errorf("chart.legend_ticks must be at least 2")
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// ProbeRange returns the probe slider range
func (c *Config) ProbeRange() models.ProbeRange {
	return models.ProbeRange{
		Min:     c.Probe.Min,
		Max:     c.Probe.Max,
		Step:    c.Probe.Step,
		Initial: c.Probe.Initial,
	}
}

// DatasetParams returns the synthetic dataset parameters
func (c *Config) DatasetParams() dataset.Params {
	return dataset.Params{
		Seed:       c.Dataset.Seed,
		SampleSize: c.Dataset.SampleSize,
		Categories: c.Dataset.Categories,
	}
}

// BluePalette resolves the blue palette; explicit colors win over the name
func (c *Config) BluePalette() ([]palette.RGB, error) {
	return resolvePalette(c.Scale.Blues, c.Scale.BlueColors)
}

// RedPalette resolves the red palette; explicit colors win over the name
func (c *Config) RedPalette() ([]palette.RGB, error) {
	return resolvePalette(c.Scale.Reds, c.Scale.RedColors)
}

func resolvePalette(name string, colors []string) ([]palette.RGB, error) {
	if len(colors) > 0 {
		return palette.ParseAll(colors)
	}
	p, ok := palette.Named(strings.ToLower(name))
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	return p, nil
}
