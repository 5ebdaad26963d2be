// Package config loads the dashboard configuration from YAML. A missing
// config.yaml falls back to config.yaml.example, and a missing example
// falls back to built-in defaults, so the binary runs out of the box
// against local backends.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/downlabs/citydash/pkg/client"
	"github.com/downlabs/citydash/pkg/models"
)

// Config holds everything citydash needs to reach its backends.
type Config struct {
	Weather struct {
		BaseURL string `yaml:"base_url"`
		Units   string `yaml:"units"`
	} `yaml:"weather"`
	Parking struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"parking"`
	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"http"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.Weather.BaseURL = client.DefaultWeatherURL
	cfg.Weather.Units = models.UnitsMetric
	cfg.Parking.BaseURL = client.DefaultParkingURL
	cfg.HTTP.TimeoutSeconds = 10
	return cfg
}

// Load reads config.yaml from the working directory.
func Load() (Config, error) {
	return LoadFile("config.yaml")
}

// LoadFile reads the named config file. When it is missing, the
// ".example" sibling is tried; when that is missing too, the defaults
// are returned. Values absent from the file keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = os.ReadFile(path + ".example")
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Timeout returns the HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
