package graphsearch

import "github.com/pdrpinto/graphsearch/internal/lineage"

// node is a path prefix waiting on the frontier.
type node[NodeType comparable] struct {
	path     *lineage.Link[NodeType]
	cost     float64
	estimate float64
	priority float64
	sequence uint64

	indexInQueue int
}

func (n *node[NodeType]) state() NodeType { return n.path.State }

// frontier is the working set of generated but not yet expanded nodes.
// Its removal order is the only thing that distinguishes the strategies.
type frontier[NodeType comparable] interface {
	push(n *node[NodeType])
	pop() *node[NodeType]
	len() int
	each(fn func(*node[NodeType]))
}

func newFrontier[NodeType comparable](strategy Strategy) (frontier[NodeType], error) {
	switch strategy {
	case DFS:
		return &stackFrontier[NodeType]{}, nil
	case BFS:
		return &queueFrontier[NodeType]{}, nil
	case UniformCost, AStar:
		return &heapFrontier[NodeType]{}, nil
	}
	return nil, ErrUnknownStrategy
}

// stackFrontier pops the most recently pushed node.
type stackFrontier[NodeType comparable] struct {
	items []*node[NodeType]
}

func (f *stackFrontier[NodeType]) push(n *node[NodeType]) { f.items = append(f.items, n) }
func (f *stackFrontier[NodeType]) pop() *node[NodeType] {
	last := len(f.items) - 1
	n := f.items[last]
	f.items[last] = nil
	f.items = f.items[:last]
	return n
}
func (f *stackFrontier[NodeType]) len() int { return len(f.items) }
func (f *stackFrontier[NodeType]) each(fn func(*node[NodeType])) {
	for _, n := range f.items {
		fn(n)
	}
}

// queueFrontier pops the earliest pushed node.
type queueFrontier[NodeType comparable] struct {
	items []*node[NodeType]
	head  int
}

func (f *queueFrontier[NodeType]) push(n *node[NodeType]) { f.items = append(f.items, n) }
func (f *queueFrontier[NodeType]) pop() *node[NodeType] {
	n := f.items[f.head]
	f.items[f.head] = nil
	f.head++
	// reclaim the consumed prefix once it dominates the slice
	if f.head > 64 && f.head*2 > len(f.items) {
		f.items = append(f.items[:0], f.items[f.head:]...)
		f.head = 0
	}
	return n
}
func (f *queueFrontier[NodeType]) len() int { return len(f.items) - f.head }
func (f *queueFrontier[NodeType]) each(fn func(*node[NodeType])) {
	for _, n := range f.items[f.head:] {
		fn(n)
	}
}
