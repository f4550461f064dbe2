// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the plot web server.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	LogsDir    string `yaml:"logs_dir"`
}

// PlotConfig holds chart geometry and sampling limits. MaxPoints <= 0
// disables downsampling.
type PlotConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	MaxPoints     int     `yaml:"max_points"`
	XRangePadding float64 `yaml:"x_range_padding"`
}

// FlagConfig controls which estimator event flags are displayed.
type FlagConfig struct {
	MaxShown  int     `yaml:"max_shown"`
	Threshold float64 `yaml:"threshold"`
}

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// EventsConfig selects where render events are written.
type EventsConfig struct {
	File             string `yaml:"file"`
	PrintOnly        bool   `yaml:"print_only"`
	GreptimeEndpoint string `yaml:"greptime_endpoint"`
	GreptimeDatabase string `yaml:"greptime_database"`
	Table            string `yaml:"table"`
}

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Plot    PlotConfig    `yaml:"plot"`
	Flags   FlagConfig    `yaml:"flags"`
	Logging LoggingConfig `yaml:"logging"`
	Events  EventsConfig  `yaml:"events"`
}

// Default returns the configuration used when no file is given. Load
// decodes files on top of it, so keys a file sets explicitly, zero
// included, win.
func Default() *Config {
	cfg := &Config{
		Plot:  PlotConfig{MaxPoints: 4000, XRangePadding: 0.05},
		Flags: FlagConfig{Threshold: 0.1},
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills values that have no meaningful zero.
func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Server.LogsDir == "" {
		c.Server.LogsDir = "logs"
	}
	if c.Plot.Width <= 0 {
		c.Plot.Width = 840
	}
	if c.Plot.Height <= 0 {
		c.Plot.Height = 400
	}
	if c.Flags.MaxShown <= 0 {
		c.Flags.MaxShown = 8
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Events.GreptimeDatabase == "" {
		c.Events.GreptimeDatabase = "public"
	}
}

// applyEnv lets deployment environments override file settings.
func (c *Config) applyEnv() {
	if v := os.Getenv("FLIGHTPLOTS_LOGS_DIR"); v != "" {
		c.Server.LogsDir = v
	}
	if v := os.Getenv("GREPTIMEDB_ENDPOINT"); v != "" {
		c.Events.GreptimeEndpoint = v
	}
	if v := os.Getenv("GREPTIMEDB_TABLE"); v != "" {
		c.Events.Table = v
	}
}

// Load loads YAML config and validates it against a CUE schema. An empty
// configPath yields the defaults; an empty cueSchemaPath uses the built-in
// schema.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if configPath == "" {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}

	// Validate with CUE first
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal YAML config: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()

	log.Printf("[Config] loaded %s: %+v", configPath, *cfg)

	return cfg, nil
}
