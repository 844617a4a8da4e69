package qpath

import (
	"context"

	"github.com/pdrpinto/qpath/astar"
	"github.com/pdrpinto/qpath/internal"
)

// ErrNoPath is returned when no goal is reachable from the start point.
var ErrNoPath = astar.ErrNoPath

// Lattice converts between continuous points and grid nodes.
type Lattice[P any, N comparable] interface {
	Quantize(P) N
	Dequantize(N) P
}

// Successor is a continuous neighbor and the cost of moving to it.
type Successor[P any, C astar.Cost] struct {
	Point P
	Cost  C
}

// Route is a path found by Search, in continuous coordinates. Every point is
// a grid position, so it generally differs from the exact start point
// passed in.
type Route[P any, C astar.Cost] struct {
	Path     []P
	Cost     C
	Expanded int
}

// Search finds a path from start to a point satisfying goal. The callbacks
// receive dequantized grid positions; points returned by successors are
// quantized back to the grid. heuristic is called from several goroutines.
func Search[P any, N comparable, C astar.Cost](
	ctx context.Context,
	lattice Lattice[P, N],
	start P,
	successors func(P) []Successor[P, C],
	heuristic func(P) C,
	goal func(P) bool,
	options ...astar.Option,
) (Route[P, C], error) {
	w := wrap(lattice, successors, heuristic, goal)
	return search(ctx, lattice, lattice.Quantize(start), w.graph, w.goal, w.heuristic, options)
}

// SearchGrid is Search for callbacks that work directly on grid nodes.
func SearchGrid[P any, N comparable, C astar.Cost](
	ctx context.Context,
	lattice Lattice[P, N],
	start P,
	successors func(N) []astar.Neighbor[N, C],
	heuristic func(N) C,
	goal func(N) bool,
	options ...astar.Option,
) (Route[P, C], error) {
	return search(ctx, lattice, lattice.Quantize(start), astar.GraphFunc[N, C](successors), goal, heuristic, options)
}

func search[P any, N comparable, C astar.Cost](
	ctx context.Context,
	lattice Lattice[P, N],
	startNode N,
	graph astar.Graph[N, C],
	goal astar.Goal[N],
	heuristic astar.Heuristic[N, C],
	options []astar.Option,
) (Route[P, C], error) {
	res, err := astar.Search(ctx, graph, startNode, goal, heuristic, options...)
	if err != nil {
		return Route[P, C]{Expanded: res.ExpandedNodes}, err
	}
	return Route[P, C]{
		Path:     internal.MapSlice(res.Path, lattice.Dequantize),
		Cost:     res.TotalCost,
		Expanded: res.ExpandedNodes,
	}, nil
}

// wrapped holds the grid-side versions of continuous callbacks.
type wrapped[N comparable, C astar.Cost] struct {
	graph     astar.GraphFunc[N, C]
	heuristic astar.Heuristic[N, C]
	goal      astar.Goal[N]
}

func wrap[P any, N comparable, C astar.Cost](
	lattice Lattice[P, N],
	successors func(P) []Successor[P, C],
	heuristic func(P) C,
	goal func(P) bool,
) wrapped[N, C] {
	return wrapped[N, C]{
		graph: func(node N) []astar.Neighbor[N, C] {
			next := successors(lattice.Dequantize(node))
			neighbors := make([]astar.Neighbor[N, C], len(next))
			for i, s := range next {
				neighbors[i] = astar.Neighbor[N, C]{ID: lattice.Quantize(s.Point), Cost: s.Cost}
			}
			return neighbors
		},
		heuristic: func(node N) C { return heuristic(lattice.Dequantize(node)) },
		goal:      func(node N) bool { return goal(lattice.Dequantize(node)) },
	}
}
