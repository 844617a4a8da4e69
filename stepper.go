package qpath

import (
	"context"

	"github.com/pdrpinto/qpath/astar"
	"github.com/pdrpinto/qpath/internal"
)

// Snapshot is an astar.StepSnapshot in continuous coordinates. Open and
// Closed are in no particular order.
type Snapshot[P any, C astar.Cost] struct {
	Current P
	Open    []P
	Closed  []P
	Path    []P
	Cost    C
	Done    bool
	Found   bool
	Step    int
}

// Stepper runs a quantized search one expansion at a time.
type Stepper[P any, N comparable, C astar.Cost] struct {
	lattice Lattice[P, N]
	inner   *astar.Stepper[N, C]
}

// NewStepper prepares a search with the same callbacks as Search.
// Close must be called to release its workers.
func NewStepper[P any, N comparable, C astar.Cost](
	ctx context.Context,
	lattice Lattice[P, N],
	start P,
	successors func(P) []Successor[P, C],
	heuristic func(P) C,
	goal func(P) bool,
	options ...astar.Option,
) *Stepper[P, N, C] {
	w := wrap(lattice, successors, heuristic, goal)
	return &Stepper[P, N, C]{
		lattice: lattice,
		inner:   astar.NewStepper[N, C](ctx, w.graph, lattice.Quantize(start), w.goal, w.heuristic, options...),
	}
}

// Step advances the search by one expansion.
func (s *Stepper[P, N, C]) Step() (Snapshot[P, C], error) {
	snap, err := s.inner.Step()
	out := Snapshot[P, C]{
		Open:   s.points(snap.Open),
		Closed: s.points(snap.Closed),
		Path:   internal.MapSlice(snap.Path, s.lattice.Dequantize),
		Cost:   snap.Cost,
		Done:   snap.Done,
		Found:  snap.Found,
		Step:   snap.StepIndex,
	}
	// An exhausted or failed search has no current node.
	if !snap.Done || snap.Found {
		out.Current = s.lattice.Dequantize(snap.Current)
	}
	return out, err
}

// Done reports whether the search has finished.
func (s *Stepper[P, N, C]) Done() bool { return s.inner.Done() }

// Close stops the workers.
func (s *Stepper[P, N, C]) Close() { s.inner.Close() }

func (s *Stepper[P, N, C]) points(nodes map[N]bool) []P {
	if nodes == nil {
		return nil
	}
	out := make([]P, 0, len(nodes))
	for node := range nodes {
		out = append(out, s.lattice.Dequantize(node))
	}
	return out
}
