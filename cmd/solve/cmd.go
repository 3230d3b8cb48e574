package solve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/grid"
	"github.com/pdrpinto/graphsearch/internal/cli"
	"github.com/pdrpinto/graphsearch/internal/config"
)

// MazeHelp describes the maze file format.
const MazeHelp = `Mazes are plain text, one character per cell:
  #    wall
  .    open cell (cost 1)
  1-9  weighted cell, entering it costs the digit
  S    start
  G    goal
For instance:
S..#....
.#.#.##.
.#...#.G
`

func NewSolveCommand(env *cli.Env) *cobra.Command {
	var (
		strategyName  string
		maxExpansions int
		pruneVisited  bool
	)

	cmd := &cobra.Command{
		Use:   "solve <maze-file>",
		Short: "Finds a path through a maze file",
		Long:  "Finds a path from S to G through a maze file and prints it.\n" + MazeHelp,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			search := env.Config.Search
			if cmd.Flags().Changed("strategy") {
				search.Strategy = strategyName
			}
			if cmd.Flags().Changed("max-expansions") {
				search.MaxExpansions = maxExpansions
			}
			if cmd.Flags().Changed("prune-visited") {
				search.PruneVisited = pruneVisited
			}
			return solve(cmd.Context(), env.Logger, args[0], search, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&strategyName, "strategy", "s", "astar", "search strategy (dfs, bfs, ucs, astar)")
	cmd.Flags().IntVar(&maxExpansions, "max-expansions", 0, "stop after this many expansions (0 = unbounded)")
	cmd.Flags().BoolVar(&pruneVisited, "prune-visited", true, "skip states already expanded on other paths (dfs, bfs)")
	return cmd
}

// LoadMaze opens and parses a maze file.
func LoadMaze(path string) (*grid.Grid, error) {
	mazeFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening maze file (%s): %w", path, err)
	}
	defer mazeFile.Close()

	g, err := grid.Parse(mazeFile)
	if err != nil {
		return nil, fmt.Errorf("error parsing maze file (%s): %w", path, err)
	}
	return g, nil
}

func solve(ctx context.Context, logger *slog.Logger, path string, search config.SearchConfig, out io.Writer) error {
	strategy, err := graphsearch.ParseStrategy(search.Strategy)
	if err != nil {
		return err
	}
	g, err := LoadMaze(path)
	if err != nil {
		return err
	}

	options := append(search.SearchOptions(), graphsearch.WithLogger(logger))
	result, err := graphsearch.Search(ctx, g.Problem(strategy == graphsearch.AStar), g.Start, strategy, options...)
	if err != nil {
		return err
	}

	if !result.Found {
		reason := "frontier exhausted"
		if result.Truncated {
			reason = "expansion budget reached"
		}
		fmt.Fprintf(out, "no path found: %s after %d expansions\n", reason, result.ExpandedNodes)
		return nil
	}

	fmt.Fprint(out, g.Render(result.Path))
	fmt.Fprintf(out, "strategy: %s\n", result.Strategy)
	fmt.Fprintf(out, "cost: %g\n", result.TotalCost)
	fmt.Fprintf(out, "length: %d\n", len(result.Path)-1)
	fmt.Fprintf(out, "expanded: %d\n", result.ExpandedNodes)
	return nil
}
