package graphsearch

import "errors"

// Sentinel errors for search operations.
var (
	// ErrInvalidProblem is returned when a Problem is missing IsGoal or Successors.
	ErrInvalidProblem = errors.New("invalid search problem")

	// ErrUnknownStrategy is returned for a Strategy value or name that is not supported.
	ErrUnknownStrategy = errors.New("unknown search strategy")

	// ErrNegativeCost is returned when Successors yields a transition with a
	// negative cost. Cost-ordered strategies are only correct for costs >= 0.
	ErrNegativeCost = errors.New("negative transition cost")
)
