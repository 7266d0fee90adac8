// Package config loads audiosim settings from an optional YAML file, an
// optional .env file and AUDIOSIM_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/viant/audiosim/feature"
	"github.com/viant/audiosim/knn"
	"github.com/viant/audiosim/logging"
	"github.com/viant/audiosim/vector"
)

const (
	// SourceDir reads candidates from a directory of JSON files.
	SourceDir = "dir"
	// SourceCatalog reads candidates from a SQLite feature catalog.
	SourceCatalog = "catalog"
)

// Config holds every audiosim setting.
type Config struct {
	K             int            `yaml:"k"`
	Workers       int            `yaml:"workers"`
	ExcludeCenter bool           `yaml:"excludeCenter"`
	Distance      string         `yaml:"distance"`
	Feature       FeatureConfig  `yaml:"feature"`
	Source        SourceConfig   `yaml:"source"`
	Log           logging.Config `yaml:"log"`
}

// FeatureConfig locates feature vectors inside records.
type FeatureConfig struct {
	Frame int `yaml:"frame"`
	Skip  int `yaml:"skip"`
}

// SourceConfig selects where candidates are read from.
type SourceConfig struct {
	Kind    string `yaml:"kind"`
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
	DB      string `yaml:"db"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		K:        knn.DefaultK,
		Workers:  1,
		Distance: vector.DistanceL2,
		Feature:  FeatureConfig{Frame: feature.DefaultFrame, Skip: feature.DefaultSkip},
		Source:   SourceConfig{Kind: SourceDir},
		Log:      logging.DefaultConfig(),
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment. Empty path or envFile skips that layer; a missing envFile is
// not an error.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to open config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to unmarshal YAML config: %w", err)
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to load .env file: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	if c.K, err = envInt("AUDIOSIM_K", c.K); err != nil {
		return err
	}
	if c.Workers, err = envInt("AUDIOSIM_WORKERS", c.Workers); err != nil {
		return err
	}
	if c.ExcludeCenter, err = envBool("AUDIOSIM_EXCLUDE_CENTER", c.ExcludeCenter); err != nil {
		return err
	}
	c.Distance = envString("AUDIOSIM_DISTANCE", c.Distance)
	c.Source.Kind = envString("AUDIOSIM_SOURCE_KIND", c.Source.Kind)
	c.Source.Dir = envString("AUDIOSIM_SOURCE_DIR", c.Source.Dir)
	c.Source.Pattern = envString("AUDIOSIM_SOURCE_PATTERN", c.Source.Pattern)
	c.Source.DB = envString("AUDIOSIM_DB", c.Source.DB)
	c.Log.Level = envString("AUDIOSIM_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envString("AUDIOSIM_LOG_FORMAT", c.Log.Format)
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.K < 1:
		return fmt.Errorf("config: k must be positive, got %d", c.K)
	case c.Workers < 1:
		return fmt.Errorf("config: workers must be positive, got %d", c.Workers)
	case c.Feature.Frame < 0:
		return fmt.Errorf("config: feature.frame must not be negative, got %d", c.Feature.Frame)
	case c.Feature.Skip < 0:
		return fmt.Errorf("config: feature.skip must not be negative, got %d", c.Feature.Skip)
	}
	if _, err := vector.DistanceByName(c.Distance); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Source.Kind {
	case SourceDir, SourceCatalog:
	default:
		return fmt.Errorf("config: unsupported source kind %q", c.Source.Kind)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Layout returns the configured feature layout.
func (c *Config) Layout() feature.Layout {
	return feature.Layout{Frame: c.Feature.Frame, Skip: c.Feature.Skip}
}

// SearchOptions maps the configuration to knn options.
func (c *Config) SearchOptions(logger *slog.Logger) ([]knn.Option, error) {
	distance, err := vector.DistanceByName(c.Distance)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []knn.Option{
		knn.WithLogger(logger),
		knn.WithLayout(c.Layout()),
		knn.WithDistance(distance),
		knn.WithWorkers(c.Workers),
		knn.WithExcludeCenter(c.ExcludeCenter),
	}, nil
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	value := envString(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("config: %s: invalid integer %q", key, value)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	value := envString(key, "")
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("config: %s: invalid boolean %q", key, value)
	}
	return b, nil
}
