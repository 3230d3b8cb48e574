// Package lineage holds the path prefixes the search engine extends.
//
// A Link is immutable once created, so siblings generated from the same
// parent share that parent's prefix instead of copying it.
package lineage

// Link is one state on a path, pointing back at the state it was reached from.
type Link[NodeType comparable] struct {
	State  NodeType
	Parent *Link[NodeType]
	depth  int
}

// Root starts a new path at state.
func Root[NodeType comparable](state NodeType) *Link[NodeType] {
	return &Link[NodeType]{State: state}
}

// Extend returns a new path ending at state whose prefix is l.
func (l *Link[NodeType]) Extend(state NodeType) *Link[NodeType] {
	return &Link[NodeType]{State: state, Parent: l, depth: l.depth + 1}
}

// Len is the number of states on the path.
func (l *Link[NodeType]) Len() int {
	if l == nil {
		return 0
	}
	return l.depth + 1
}

// Contains reports whether state appears anywhere on the path.
func (l *Link[NodeType]) Contains(state NodeType) bool {
	for current := l; current != nil; current = current.Parent {
		if current.State == state {
			return true
		}
	}
	return false
}

// Path rebuilds the states from the root to l.
func (l *Link[NodeType]) Path() []NodeType {
	if l == nil {
		return nil
	}
	path := make([]NodeType, 0, l.Len())
	for current := l; current != nil; current = current.Parent {
		path = append(path, current.State)
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
