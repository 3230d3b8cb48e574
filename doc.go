// Package graphsearch provides a generic graph search engine with four
// interchangeable strategies: depth-first, breadth-first, uniform-cost
// (Dijkstra) and A*.
//
// It exposes three entry points:
//
//   - Search: run one search to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//   - SearchAll: run independent searches from many start states on a worker pool.
//
// All strategies share a single best-first loop; they differ only in how the
// frontier orders the path prefixes waiting to be expanded.
package graphsearch
