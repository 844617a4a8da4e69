package astar

import (
	"context"
	"errors"
	"maps"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable, CostType Cost] struct {
	Current   NodeType
	Open      map[NodeType]bool
	Closed    map[NodeType]bool
	CameFrom  map[NodeType]NodeType
	Done      bool
	Found     bool
	Path      []NodeType
	Cost      CostType
	StepIndex int
}

// Stepper provides a step-by-step orchestrator over the concurrent workers
type Stepper[NodeType comparable, CostType Cost] struct {
	state  *searchState[NodeType, CostType]
	cancel context.CancelFunc
	// err is a setup failure reported by the first Step.
	err error

	stepCount int
	done      bool
	found     bool
	last      StepSnapshot[NodeType, CostType]
}

// NewStepper creates a new stepper using the same worker-based expansion logic as Search.
// Close must be called to release the workers.
func NewStepper[NodeType comparable, CostType Cost](
	parent context.Context,
	graph Graph[NodeType, CostType],
	startNode NodeType,
	goal Goal[NodeType],
	heuristic Heuristic[NodeType, CostType],
	options ...Option,
) *Stepper[NodeType, CostType] {
	ctx, cancel := context.WithCancel(parent)
	state, err := newSearchState(ctx, graph, startNode, goal, heuristic, applyOptions(options))
	return &Stepper[NodeType, CostType]{state: state, cancel: cancel, err: err}
}

// Close stops the workers
func (s *Stepper[NodeType, CostType]) Close() {
	s.cancel()
	if s.state != nil {
		s.state.close()
	}
}

// Done reports whether the search has finished.
func (s *Stepper[NodeType, CostType]) Done() bool { return s.done }

// Step advances the search by one node expansion and returns a snapshot.
// Exhausting the frontier is not an error: the snapshot has Done set and
// Found unset. Once done, Step keeps returning the final snapshot.
func (s *Stepper[NodeType, CostType]) Step() (StepSnapshot[NodeType, CostType], error) {
	if s.done {
		return s.last, nil
	}

	s.stepCount++
	if s.err != nil {
		s.done = true
		s.last = StepSnapshot[NodeType, CostType]{Done: true, StepIndex: s.stepCount}
		return s.last, s.err
	}
	currentItem, found, err := s.state.expand()
	switch {
	case errors.Is(err, ErrNoPath):
		s.done = true
		s.last = s.snapshot()
		return s.last, nil
	case err != nil:
		s.done = true
		s.last = StepSnapshot[NodeType, CostType]{Done: true, StepIndex: s.stepCount}
		return s.last, err
	}

	snapshot := s.snapshot()
	snapshot.Current = currentItem.Node
	if found {
		s.done = true
		s.found = true
		snapshot.Done = true
		snapshot.Found = true
		snapshot.Path = s.state.path(currentItem.Node)
		snapshot.Cost = currentItem.GScore
		s.last = snapshot
		s.state.logger.V(1).Info("stepper finished", "steps", s.stepCount, "cost", snapshot.Cost)
	}
	return snapshot, nil
}

func (s *Stepper[NodeType, CostType]) snapshot() StepSnapshot[NodeType, CostType] {
	return StepSnapshot[NodeType, CostType]{
		Open:      s.state.openSet.Nodes(),
		Closed:    maps.Clone(s.state.closedSet),
		CameFrom:  maps.Clone(s.state.cameFrom),
		Done:      s.done,
		Found:     s.found,
		StepIndex: s.stepCount,
	}
}
