package graphsearch_test

import (
	"github.com/pdrpinto/graphsearch"
)

type edge struct {
	to   string
	cost float64
}

// adjacency is a small explicit graph used across the suites.
type adjacency map[string][]edge

func (a adjacency) successors(state string) []graphsearch.Transition[string] {
	edges := a[state]
	out := make([]graphsearch.Transition[string], 0, len(edges))
	for _, e := range edges {
		out = append(out, graphsearch.Transition[string]{State: e.to, Cost: e.cost})
	}
	return out
}

func (a adjacency) problem(goal string, heuristic map[string]float64) graphsearch.Problem[string] {
	p := graphsearch.Problem[string]{
		IsGoal:     func(state string) bool { return state == goal },
		Successors: a.successors,
	}
	if heuristic != nil {
		p.Heuristic = func(state string) float64 { return heuristic[state] }
	}
	return p
}

func unit(targets ...string) []edge {
	edges := make([]edge, 0, len(targets))
	for _, t := range targets {
		edges = append(edges, edge{to: t, cost: 1})
	}
	return edges
}

type cell [2]int

// gridProblem is an open width x height grid with 4-neighbour unit moves.
func gridProblem(width, height int, goal cell, blocked map[cell]bool) graphsearch.Problem[cell] {
	return graphsearch.Problem[cell]{
		IsGoal: func(c cell) bool { return c == goal },
		Successors: func(c cell) []graphsearch.Transition[cell] {
			var out []graphsearch.Transition[cell]
			for _, d := range []cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				next := cell{c[0] + d[0], c[1] + d[1]}
				if next[0] < 0 || next[0] >= width || next[1] < 0 || next[1] >= height || blocked[next] {
					continue
				}
				out = append(out, graphsearch.Step(next))
			}
			return out
		},
	}
}

// pathCost sums the edge costs along path, or returns -1 if an edge is missing.
func pathCost(graph adjacency, path []string) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		found := false
		for _, e := range graph[path[i-1]] {
			if e.to == path[i] {
				total += e.cost
				found = true
				break
			}
		}
		if !found {
			return -1
		}
	}
	return total
}
