package graphsearch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SearchAll runs one independent search per start state on a pool of
// NumberOfWorkers goroutines. results[i] belongs to starts[i].
//
// Each search owns its own frontier and visited set; problem's callbacks are
// invoked concurrently and must be safe for that. The first error cancels
// the searches still running and is returned.
func SearchAll[NodeType comparable](
	contextObject context.Context,
	problem Problem[NodeType],
	starts []NodeType,
	strategy Strategy,
	options ...Option,
) ([]Result[NodeType], error) {
	searchOptions := buildOptions(options)
	if err := problem.validate(); err != nil {
		return nil, err
	}
	if _, err := newFrontier[NodeType](strategy); err != nil {
		return nil, err
	}

	results := make([]Result[NodeType], len(starts))
	group, groupContext := errgroup.WithContext(contextObject)
	group.SetLimit(searchOptions.NumberOfWorkers)

	for i, start := range starts {
		group.Go(func() error {
			result, err := Search(groupContext, problem, start, strategy, options...)
			results[i] = result
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
