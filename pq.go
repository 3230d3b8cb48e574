package graphsearch

import "container/heap"

// priorityQueue orders nodes by priority, breaking ties by insertion sequence
// so equal-priority paths come out first-in first-out.
type priorityQueue[NodeType comparable] []*node[NodeType]

func (queue priorityQueue[NodeType]) Len() int { return len(queue) }
func (queue priorityQueue[NodeType]) Less(i, j int) bool {
	if queue[i].priority != queue[j].priority {
		return queue[i].priority < queue[j].priority
	}
	return queue[i].sequence < queue[j].sequence
}
func (queue priorityQueue[NodeType]) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].indexInQueue = i
	queue[j].indexInQueue = j
}

func (queue *priorityQueue[NodeType]) Push(x any) {
	item := x.(*node[NodeType])
	item.indexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *priorityQueue[NodeType]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.indexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// heapFrontier adapts priorityQueue to the frontier interface.
type heapFrontier[NodeType comparable] struct {
	queue priorityQueue[NodeType]
}

func (f *heapFrontier[NodeType]) push(n *node[NodeType]) { heap.Push(&f.queue, n) }
func (f *heapFrontier[NodeType]) pop() *node[NodeType] {
	return heap.Pop(&f.queue).(*node[NodeType])
}
func (f *heapFrontier[NodeType]) len() int { return f.queue.Len() }
func (f *heapFrontier[NodeType]) each(fn func(*node[NodeType])) {
	for _, n := range f.queue {
		fn(n)
	}
}
