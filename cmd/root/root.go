package root

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/graphsearch/cmd/compare"
	"github.com/pdrpinto/graphsearch/cmd/serve"
	"github.com/pdrpinto/graphsearch/cmd/solve"
	"github.com/pdrpinto/graphsearch/internal/cli"
)

const flushTimeout = 5 * time.Second

func NewRootCmd(env *cli.Env) *cobra.Command {
	var configPath, logLevel string

	rootCmd := &cobra.Command{
		Use:   "graphsearch",
		Short: "Graphsearch finds paths with DFS, BFS, uniform-cost and A* search",
		Long: `A generic graph search engine written in Go.
The commands below run it over maze files or serve a step-by-step visualiser API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Setup(cmd.Context(), configPath, logLevel, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand(env))
	rootCmd.AddCommand(compare.NewCompareCommand(env))
	rootCmd.AddCommand(serve.NewServeCommand(env))

	return rootCmd
}

// Execute runs cmd and then flushes the telemetry env started, also when the
// command failed or ctx was cancelled.
func Execute(ctx context.Context, cmd *cobra.Command, env *cli.Env) error {
	err := cmd.ExecuteContext(ctx)

	flushContext, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()
	return errors.Join(err, env.Close(flushContext))
}
