package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/stepwise"
)

// Config holds all stepwise configuration.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Solver  SolverConfig  `yaml:"solver"`
	Server  ServerConfig  `yaml:"server"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds the default rendering options.
type RenderConfig struct {
	Format           string `yaml:"format"` // text, latex
	DecimalResult    bool   `yaml:"decimal_result"`
	Precision        int32  `yaml:"precision"` // fractional digits kept when rounding
	KeepFractionForm bool   `yaml:"keep_fraction_form"`
	ExplicitProducts bool   `yaml:"explicit_products"`
	DisplayUnit      string `yaml:"display_unit"`
}

// SolverConfig holds the default auto-resolution options.
type SolverConfig struct {
	// AssumeLength discards negative roots in pythagorean mode.
	AssumeLength bool `yaml:"assume_length"`
}

// ServerConfig configures the HTTP tool server.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
	ReadTimeout       string `yaml:"read_timeout"`
	WriteTimeout      string `yaml:"write_timeout"`
	IdleTimeout       string `yaml:"idle_timeout"`
	MaxBodyBytes      int64  `yaml:"max_body_bytes"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Format:    "text",
			Precision: 2,
		},
		Solver: SolverConfig{
			AssumeLength: true,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: "5s",
			ReadTimeout:       "15s",
			WriteTimeout:      "15s",
			IdleTimeout:       "60s",
			MaxBodyBytes:      1 << 20,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STEPWISE_PRECISION"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			c.Render.Precision = int32(n)
		}
	}
	if addr := os.Getenv("STEPWISE_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("STEPWISE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// ValidFormats lists the supported render formats.
var ValidFormats = []string{"text", "latex"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validFormat := false
	for _, f := range ValidFormats {
		if c.Render.Format == f {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid render format: %s (valid: %v)", c.Render.Format, ValidFormats)
	}
	if c.Render.Precision < 0 {
		return fmt.Errorf("render precision must be >= 0, got %d", c.Render.Precision)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch concurrency must be >= 1, got %d", c.Batch.Concurrency)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server max_body_bytes must be > 0")
	}
	return nil
}

// RenderOptions converts the render section into engine options.
func (c *Config) RenderOptions() stepwise.RenderOptions {
	opts := stepwise.RenderOptions{
		DisplayUnit:      c.Render.DisplayUnit,
		DecimalResult:    c.Render.DecimalResult,
		Precision:        c.Render.Precision,
		KeepFractionForm: c.Render.KeepFractionForm,
		ExplicitProducts: c.Render.ExplicitProducts,
	}
	if c.Render.Format == "latex" {
		opts.Format = stepwise.FormatLaTeX
	}
	return opts
}

// SolveOptions converts the render and solver sections into solver options.
func (c *Config) SolveOptions() stepwise.SolveOptions {
	return stepwise.SolveOptions{
		DecimalResult: c.Render.DecimalResult,
		Precision:     c.Render.Precision,
		Length:        c.Solver.AssumeLength,
	}
}

// Duration parses one of the server timeouts, falling back to def.
func Duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
