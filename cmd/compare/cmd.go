package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/cmd/solve"
	"github.com/pdrpinto/graphsearch/grid"
	"github.com/pdrpinto/graphsearch/internal/cli"
	"github.com/pdrpinto/graphsearch/internal/config"
)

func NewCompareCommand(env *cli.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <maze-file>",
		Short: "Runs every strategy on a maze file and prints a comparison",
		Long:  "Runs dfs, bfs, ucs and astar on the same maze concurrently and tabulates their results.\n" + solve.MazeHelp,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := solve.LoadMaze(args[0])
			if err != nil {
				return err
			}
			results, err := Run(cmd.Context(), g, env.Config.Search, graphsearch.WithLogger(env.Logger))
			if err != nil {
				return err
			}
			return Print(cmd.OutOrStdout(), results)
		},
	}
}

// Run searches g with every strategy concurrently, at most search.Workers at a
// time when it is positive. results[i] belongs to graphsearch.Strategies()[i].
func Run(ctx context.Context, g *grid.Grid, search config.SearchConfig, extra ...graphsearch.Option) ([]graphsearch.Result[grid.Point], error) {
	strategies := graphsearch.Strategies()
	results := make([]graphsearch.Result[grid.Point], len(strategies))
	options := append(search.SearchOptions(), extra...)

	group, groupContext := errgroup.WithContext(ctx)
	if search.Workers > 0 {
		group.SetLimit(search.Workers)
	}
	for i, strategy := range strategies {
		group.Go(func() error {
			result, err := graphsearch.Search(groupContext, g.Problem(strategy == graphsearch.AStar), g.Start, strategy, options...)
			if err != nil {
				return fmt.Errorf("%s: %w", strategy, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Print writes results as an aligned table.
func Print(out io.Writer, results []graphsearch.Result[grid.Point]) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tFOUND\tCOST\tLENGTH\tEXPANDED")
	for _, r := range results {
		length := "-"
		cost := "-"
		if r.Found {
			length = fmt.Sprint(len(r.Path) - 1)
			cost = fmt.Sprintf("%g", r.TotalCost)
		}
		fmt.Fprintf(w, "%s\t%t\t%s\t%s\t%d\n", r.Strategy, r.Found, cost, length, r.ExpandedNodes)
	}
	return w.Flush()
}
