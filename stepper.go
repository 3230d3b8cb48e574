package graphsearch

import (
	"context"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable] struct {
	Current   NodeType
	Frontier  []NodeType
	Visited   map[NodeType]bool
	Done      bool
	Found     bool
	Truncated bool
	Path      []NodeType
	StepIndex int
}

// Stepper advances a search one expansion at a time.
//
// It drives exactly the loop Search runs, so the sequence of Current states
// it reports is the expansion order of the equivalent Search call.
// A Stepper is not safe for concurrent use.
type Stepper[NodeType comparable] struct {
	ctx    context.Context
	cancel context.CancelFunc
	run    *run[NodeType]

	expanded  map[NodeType]bool
	stepCount int
}

// NewStepper creates a new stepper over the same run Search uses
func NewStepper[NodeType comparable](
	parent context.Context,
	problem Problem[NodeType],
	startNode NodeType,
	strategy Strategy,
	options ...Option,
) (*Stepper[NodeType], error) {
	r, err := newRun(problem, startNode, strategy, buildOptions(options))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(parent)
	return &Stepper[NodeType]{
		ctx:      ctx,
		cancel:   cancel,
		run:      r,
		expanded: make(map[NodeType]bool),
	}, nil
}

// Close stops the stepper; further calls to Step report a finished search.
func (s *Stepper[NodeType]) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.run.done = true
}

// Step advances the search by one node expansion and returns a snapshot
func (s *Stepper[NodeType]) Step() (StepSnapshot[NodeType], error) {
	if s.run.done {
		return s.snapshot(nil), nil
	}
	if err := s.ctx.Err(); err != nil {
		s.run.done = true
		return StepSnapshot[NodeType]{Done: true, StepIndex: s.stepCount}, err
	}

	current, err := s.run.step()
	if current != nil {
		s.stepCount++
		s.expanded[current.state()] = true
	}
	return s.snapshot(current), err
}

// Result reports the outcome so far. It is final once a snapshot with Done is returned.
func (s *Stepper[NodeType]) Result() Result[NodeType] {
	return s.run.result()
}

func (s *Stepper[NodeType]) snapshot(current *node[NodeType]) StepSnapshot[NodeType] {
	snapshot := StepSnapshot[NodeType]{
		Frontier:  s.run.frontierStates(),
		Visited:   copyBoolMap(s.expanded),
		Done:      s.run.done,
		Found:     s.run.found,
		Truncated: s.run.truncated,
		StepIndex: s.stepCount,
	}
	if current != nil {
		snapshot.Current = current.state()
	}
	if s.run.found {
		snapshot.Path = s.run.goal.path.Path()
	}
	return snapshot
}

func copyBoolMap[T comparable](m map[T]bool) map[T]bool {
	if m == nil {
		return nil
	}
	c := make(map[T]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
