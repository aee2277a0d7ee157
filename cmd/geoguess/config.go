package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/andreiashu/geoguess"
)

// Config is the command configuration. It can be read from a TOML or YAML
// file and is then overridden by any flags set on the command line.
type Config struct {
	Data            string     `toml:"data" yaml:"data"`
	MarginStepKm    float64    `toml:"margin_step_km" yaml:"margin_step_km"`
	MarginCeilingKm float64    `toml:"margin_ceiling_km" yaml:"margin_ceiling_km"`
	SpecialPairs    [][]string `toml:"special_pairs" yaml:"special_pairs"` // added to the built-in table
	MetricsAddr     string     `toml:"metrics_addr" yaml:"metrics_addr"`
	Log             LogConfig  `toml:"log" yaml:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Pretty bool   `toml:"pretty" yaml:"pretty"`
}

func defaultConfig() Config {
	return Config{
		Data:            "country_data.json",
		MarginStepKm:    geoguess.DefaultMarginStepKm,
		MarginCeilingKm: geoguess.DefaultMarginCeilingKm,
		Log: LogConfig{
			Level:  "warn",
			Pretty: true,
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
// The format is chosen by extension: .toml, .yaml or .yml.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Data) == "" {
		return fmt.Errorf("data path is empty")
	}
	for i, p := range c.SpecialPairs {
		if len(p) != 2 {
			return fmt.Errorf("special_pairs[%d]: want 2 country names, got %d", i, len(p))
		}
	}
	return nil
}

// specialPairs returns the built-in table extended with configured pairs.
func (c Config) specialPairs() geoguess.SpecialPairs {
	extra := make([][2]string, 0, len(c.SpecialPairs))
	for _, p := range c.SpecialPairs {
		extra = append(extra, [2]string{p[0], p[1]})
	}
	return geoguess.DefaultSpecialPairs().With(extra...)
}
