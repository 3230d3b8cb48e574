package graphsearch

import (
	"fmt"
	"math"

	"github.com/pdrpinto/graphsearch/internal/lineage"
)

// run is the state of one search invocation. Search and Stepper both drive it
// one expansion at a time; nothing in it outlives the invocation.
type run[NodeType comparable] struct {
	problem  Problem[NodeType]
	strategy Strategy
	options  Options

	open     frontier[NodeType]
	visited  map[NodeType]bool
	sequence uint64

	expanded  int
	done      bool
	found     bool
	truncated bool
	goal      *node[NodeType]
}

func newRun[NodeType comparable](
	problem Problem[NodeType],
	startNode NodeType,
	strategy Strategy,
	options Options,
) (*run[NodeType], error) {
	if err := problem.validate(); err != nil {
		return nil, err
	}
	open, err := newFrontier[NodeType](strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, strategy)
	}

	r := &run[NodeType]{
		problem:  problem,
		strategy: strategy,
		options:  options,
		open:     open,
	}
	if strategy.costOrdered() || options.PruneVisited {
		r.visited = make(map[NodeType]bool)
	}
	r.push(lineage.Root(startNode), 0)
	return r, nil
}

func (r *run[NodeType]) push(path *lineage.Link[NodeType], cost float64) {
	estimate := r.problem.estimate(r.strategy, path.State)
	r.open.push(&node[NodeType]{
		path:     path,
		cost:     cost,
		estimate: estimate,
		priority: cost + estimate,
		sequence: r.sequence,
	})
	r.sequence++
}

// step removes one node from the frontier and expands it. It returns the
// expanded node, or nil once the run is done.
func (r *run[NodeType]) step() (*node[NodeType], error) {
	for !r.done {
		if r.open.len() == 0 {
			r.done = true
			return nil, nil
		}
		if r.options.MaxExpansions > 0 && r.expanded >= r.options.MaxExpansions {
			r.done = true
			r.truncated = true
			return nil, nil
		}

		current := r.open.pop()
		state := current.state()

		// Skip if already finalized through a cheaper or earlier path
		if r.visited != nil {
			if r.visited[state] {
				continue
			}
			r.visited[state] = true
		}
		r.expanded++

		// Goal check
		if r.problem.IsGoal(state) {
			r.done = true
			r.found = true
			r.goal = current
			return current, nil
		}

		for _, transition := range r.problem.Successors(state) {
			if transition.Cost < 0 || math.IsNaN(transition.Cost) {
				r.done = true
				return current, fmt.Errorf("%w: %v -> %v costs %v",
					ErrNegativeCost, state, transition.State, transition.Cost)
			}
			if r.closed(current, transition.State) {
				continue
			}
			r.push(current.path.Extend(transition.State), current.cost+transition.Cost)
		}
		return current, nil
	}
	return nil, nil
}

// closed reports whether next must not be generated from current.
func (r *run[NodeType]) closed(current *node[NodeType], next NodeType) bool {
	if r.visited != nil && r.visited[next] {
		return true
	}
	if r.strategy.costOrdered() {
		return false
	}
	// branch closing: never revisit a state already on this path
	return current.path.Contains(next)
}

func (r *run[NodeType]) frontierStates() []NodeType {
	states := make([]NodeType, 0, r.open.len())
	r.open.each(func(n *node[NodeType]) {
		states = append(states, n.state())
	})
	return states
}

func (r *run[NodeType]) result() Result[NodeType] {
	result := Result[NodeType]{
		ExpandedNodes: r.expanded,
		Found:         r.found,
		Truncated:     r.truncated,
		Strategy:      r.strategy,
	}
	if r.found {
		result.Path = r.goal.path.Path()
		result.TotalCost = r.goal.cost
	}
	return result
}
