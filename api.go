package graphsearch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// Strategy selects the frontier discipline of a search.
type Strategy int

const (
	// DFS expands the most recently generated path first.
	DFS Strategy = iota
	// BFS expands the earliest generated path first.
	BFS
	// UniformCost expands the cheapest path first (Dijkstra).
	UniformCost
	// AStar expands the path with the lowest cost plus heuristic estimate first.
	AStar
)

var strategyNames = map[Strategy]string{
	DFS:         "dfs",
	BFS:         "bfs",
	UniformCost: "ucs",
	AStar:       "astar",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// costOrdered reports whether the strategy finalizes states through a visited set.
func (s Strategy) costOrdered() bool {
	return s == UniformCost || s == AStar
}

// Strategies lists every supported strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{DFS, BFS, UniformCost, AStar}
}

// ParseStrategy maps a user supplied name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dfs", "depth-first":
		return DFS, nil
	case "bfs", "breadth-first":
		return BFS, nil
	case "ucs", "uniform-cost", "uniformcost", "dijkstra":
		return UniformCost, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Transition represents a reachable state with the cost of moving to it.
type Transition[NodeType comparable] struct {
	State NodeType
	Cost  float64
}

// Step builds a unit-cost transition to state.
func Step[NodeType comparable](state NodeType) Transition[NodeType] {
	return Transition[NodeType]{State: state, Cost: 1}
}

// Problem defines the state space being searched.
//
// IsGoal and Successors are required. Successors must return a finite slice
// for every reachable state. Heuristic is only consulted by AStar and should
// never overestimate the remaining cost; a nil Heuristic counts as zero.
type Problem[NodeType comparable] struct {
	IsGoal     func(state NodeType) bool
	Successors func(state NodeType) []Transition[NodeType]
	Heuristic  func(state NodeType) float64
}

func (p Problem[NodeType]) validate() error {
	if p.IsGoal == nil {
		return fmt.Errorf("%w: IsGoal is nil", ErrInvalidProblem)
	}
	if p.Successors == nil {
		return fmt.Errorf("%w: Successors is nil", ErrInvalidProblem)
	}
	return nil
}

func (p Problem[NodeType]) estimate(strategy Strategy, state NodeType) float64 {
	if strategy != AStar || p.Heuristic == nil {
		return 0
	}
	return p.Heuristic(state)
}

// Result contains the outcome of a search.
//
// Found is false both when the frontier was exhausted and when the search
// was cut short; Truncated tells the two apart.
type Result[NodeType comparable] struct {
	Path          []NodeType
	TotalCost     float64
	ExpandedNodes int
	Found         bool
	Truncated     bool
	Strategy      Strategy
}

// Options defines parameters for the search.
type Options struct {
	// NumberOfWorkers bounds how many searches SearchAll runs at once.
	NumberOfWorkers int
	// MaxExpansions stops a search after that many expansions. Zero means unbounded.
	MaxExpansions int
	// PruneVisited makes DFS and BFS skip states expanded on any earlier path,
	// not just states on the current path.
	PruneVisited bool
	Logger       *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many searches SearchAll may run concurrently.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithMaxExpansions bounds the number of expansions of each search.
func WithMaxExpansions(maxExpansions int) Option {
	return func(options *Options) { options.MaxExpansions = maxExpansions }
}

// WithVisitedPruning enables the visited set for DFS and BFS.
func WithVisitedPruning() Option {
	return func(options *Options) { options.PruneVisited = true }
}

// WithLogger routes debug records about each search to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func buildOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.DiscardHandler)
	}
	return searchOptions
}

// Search runs strategy from start until a goal is reached or the frontier is exhausted.
//
// An unreachable goal is not an error: the returned Result has Found set to
// false. Errors are reserved for invalid input, negative transition costs and
// context cancellation.
func Search[NodeType comparable](
	contextObject context.Context,
	problem Problem[NodeType],
	startNode NodeType,
	strategy Strategy,
	options ...Option,
) (Result[NodeType], error) {
	searchOptions := buildOptions(options)

	r, err := newRun(problem, startNode, strategy, searchOptions)
	if err != nil {
		return Result[NodeType]{Strategy: strategy}, err
	}

	spanContext, span := startSearchSpan(contextObject, strategy)
	defer span.End()
	started := time.Now()

	searchOptions.Logger.Debug("search started",
		slog.String("strategy", strategy.String()),
		slog.Int("max_expansions", searchOptions.MaxExpansions),
	)

	for !r.done {
		if err := spanContext.Err(); err != nil {
			result := r.result()
			finishSearch(spanContext, span, result, time.Since(started), err)
			return result, err
		}
		if _, err := r.step(); err != nil {
			result := r.result()
			finishSearch(spanContext, span, result, time.Since(started), err)
			return result, err
		}
	}

	result := r.result()
	finishSearch(spanContext, span, result, time.Since(started), nil)
	searchOptions.Logger.Debug("search finished",
		slog.String("strategy", strategy.String()),
		slog.Int("expanded", result.ExpandedNodes),
		slog.Bool("found", result.Found),
		slog.Bool("truncated", result.Truncated),
		slog.Float64("cost", result.TotalCost),
	)
	return result, nil
}
