// Package astar provides a generic and concurrent A* pathfinding implementation.
//
// It exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// The library is generic over node type and cost type and uses a worker pool
// to parallelize neighbor scoring while keeping a single orchestrator that
// owns the frontier. Graph.Neighbors and the goal predicate are only called
// from the orchestrator; the heuristic is called from worker goroutines and
// must be safe for concurrent use.
//
// Edge costs must be non-negative. Optimality holds for admissible,
// consistent heuristics; closed nodes are never reopened.
package astar
