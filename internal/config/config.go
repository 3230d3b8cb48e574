// Package config loads settings for the graphsearch commands.
//
// Settings are resolved in order: defaults, then a YAML (or JSON) file, then
// GRAPHSEARCH_* environment variables. Command line flags are applied on top
// by the commands themselves.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/internal/logging"
	"github.com/pdrpinto/graphsearch/internal/telemetry"
)

// Config is the full configuration of the graphsearch commands.
type Config struct {
	// Search contains engine settings.
	Search SearchConfig `json:"search" yaml:"search"`

	// Server contains settings for the visualiser API.
	Server ServerConfig `json:"server" yaml:"server"`

	// Log contains logger settings.
	Log logging.Config `json:"log" yaml:"log"`

	// Telemetry contains exporter settings.
	Telemetry telemetry.Config `json:"telemetry" yaml:"telemetry"`
}

// SearchConfig holds engine settings.
type SearchConfig struct {
	Strategy      string `json:"strategy" yaml:"strategy"`
	MaxExpansions int    `json:"max_expansions" yaml:"max_expansions"`
	Workers       int    `json:"workers" yaml:"workers"`
	PruneVisited  bool   `json:"prune_visited" yaml:"prune_visited"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Port  int  `json:"port" yaml:"port"`
	Debug bool `json:"debug" yaml:"debug"`
	// MaxSessions bounds the number of live stepping sessions.
	MaxSessions int `json:"max_sessions" yaml:"max_sessions"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Strategy:     graphsearch.AStar.String(),
			PruneVisited: true,
		},
		Server: ServerConfig{
			Port:        8080,
			MaxSessions: 64,
		},
		Log:       logging.DefaultConfig(),
		Telemetry: telemetry.DefaultConfig(),
	}
}

// Load resolves the configuration. A missing file at configPath is not an
// error; defaults are used instead.
func Load(configPath string) (Config, error) {
	config := Default()

	if configPath != "" {
		if err := loadFile(configPath, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadEnv(&config); err != nil {
		return config, fmt.Errorf("load config from environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadEnv(config *Config) error {
	if v := os.Getenv("GRAPHSEARCH_STRATEGY"); v != "" {
		config.Search.Strategy = v
	}
	if v := os.Getenv("GRAPHSEARCH_MAX_EXPANSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GRAPHSEARCH_MAX_EXPANSIONS: %w", err)
		}
		config.Search.MaxExpansions = n
	}
	if v := os.Getenv("GRAPHSEARCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GRAPHSEARCH_WORKERS: %w", err)
		}
		config.Search.Workers = n
	}
	if v := os.Getenv("GRAPHSEARCH_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GRAPHSEARCH_PORT: %w", err)
		}
		config.Server.Port = n
	}
	if v := os.Getenv("GRAPHSEARCH_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := graphsearch.ParseStrategy(c.Search.Strategy); err != nil {
		return err
	}
	if c.Search.MaxExpansions < 0 {
		return fmt.Errorf("search.max_expansions must be >= 0, got %d", c.Search.MaxExpansions)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search.workers must be >= 0, got %d", c.Search.Workers)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxSessions < 1 {
		return fmt.Errorf("server.max_sessions must be >= 1, got %d", c.Server.MaxSessions)
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return c.Telemetry.Validate()
}

// SearchOptions converts the search section into engine options.
func (c SearchConfig) SearchOptions() []graphsearch.Option {
	var options []graphsearch.Option
	if c.MaxExpansions > 0 {
		options = append(options, graphsearch.WithMaxExpansions(c.MaxExpansions))
	}
	if c.Workers > 0 {
		options = append(options, graphsearch.WithWorkers(c.Workers))
	}
	if c.PruneVisited {
		options = append(options, graphsearch.WithVisitedPruning())
	}
	return options
}
