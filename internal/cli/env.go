// Package cli holds the state shared by the graphsearch subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdrpinto/graphsearch/internal/config"
	"github.com/pdrpinto/graphsearch/internal/logging"
	"github.com/pdrpinto/graphsearch/internal/telemetry"
)

// Env is filled in by the root command before any subcommand runs.
type Env struct {
	Config config.Config
	Logger *slog.Logger

	// TelemetryOutput, when set, receives stdout exporter output.
	TelemetryOutput io.Writer

	shutdown func(context.Context) error
}

// NewEnv returns an Env with default configuration and a discarding logger.
func NewEnv() *Env {
	return &Env{
		Config: config.Default(),
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Setup loads configuration from configPath, applies a non-empty logLevel
// override, builds the logger and starts telemetry.
func (e *Env) Setup(ctx context.Context, configPath, logLevel string, logOutput io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Log.Validate(); err != nil {
			return err
		}
	}

	if e.TelemetryOutput != nil {
		cfg.Telemetry.Writer = e.TelemetryOutput
	}

	logger, err := logging.New(cfg.Log, logOutput)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	shutdown, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}

	e.Config = cfg
	e.Logger = logger
	e.shutdown = shutdown
	return nil
}

// Close flushes telemetry started by Setup.
func (e *Env) Close(ctx context.Context) error {
	if e.shutdown == nil {
		return nil
	}
	err := e.shutdown(ctx)
	e.shutdown = nil
	return err
}
