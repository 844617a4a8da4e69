package astar

import (
	"context"
	"errors"
	"runtime"

	"github.com/go-logr/logr"
	"golang.org/x/exp/constraints"
)

var (
	// ErrNoPath is returned when the frontier is exhausted without reaching a goal.
	ErrNoPath = errors.New("no path found")
	// ErrNegativeCost is returned when Neighbors reports an edge with negative cost.
	ErrNegativeCost = errors.New("negative edge cost")
	// ErrExpansionLimit is returned when WithMaxExpansions stops the search.
	ErrExpansionLimit = errors.New("expansion limit reached")
)

// Cost is the constraint on path costs: any built-in integer or float type.
type Cost interface {
	constraints.Integer | constraints.Float
}

// Graph is generic over node type N.
// N must be comparable so it can be used in maps.
type Graph[NodeType comparable, CostType Cost] interface {
	Neighbors(node NodeType) []Neighbor[NodeType, CostType]
}

// GraphFunc adapts a function to Graph.
type GraphFunc[NodeType comparable, CostType Cost] func(node NodeType) []Neighbor[NodeType, CostType]

// Neighbors calls f(node).
func (f GraphFunc[NodeType, CostType]) Neighbors(node NodeType) []Neighbor[NodeType, CostType] {
	return f(node)
}

// Neighbor represents a reachable node with a cost.
type Neighbor[NodeType comparable, CostType Cost] struct {
	ID   NodeType
	Cost CostType
}

// Heuristic returns the estimated remaining cost from node to the nearest goal.
type Heuristic[NodeType comparable, CostType Cost] func(node NodeType) CostType

// Goal reports whether node ends the search.
type Goal[NodeType comparable] func(node NodeType) bool

// Result contains the outcome of a search
type Result[NodeType comparable, CostType Cost] struct {
	Path          []NodeType
	TotalCost     CostType
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	// MaxExpansions bounds the number of expanded nodes; zero means unbounded.
	MaxExpansions int
	Logger        logr.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines should score neighbors.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithMaxExpansions stops the search with ErrExpansionLimit after n expansions.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithLogger sets the logger. Search summaries are logged at V(1), each
// expansion at V(2).
func WithLogger(logger logr.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
		Logger:          logr.Discard(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// Search executes the concurrent A* search algorithm from startNode until a
// node satisfying goal is expanded. When no such node is reachable the
// returned error is ErrNoPath.
func Search[NodeType comparable, CostType Cost](
	contextObject context.Context,
	graph Graph[NodeType, CostType],
	startNode NodeType,
	goal Goal[NodeType],
	heuristic Heuristic[NodeType, CostType],
	options ...Option,
) (Result[NodeType, CostType], error) {
	searchOptions := applyOptions(options)
	state, err := newSearchState(contextObject, graph, startNode, goal, heuristic, searchOptions)
	if err != nil {
		return Result[NodeType, CostType]{}, err
	}
	defer state.close()

	for {
		currentItem, found, err := state.expand()
		if err != nil {
			state.logger.V(1).Info("search stopped", "expanded", state.expanded, "reason", err.Error())
			return Result[NodeType, CostType]{ExpandedNodes: state.expanded}, err
		}
		if found {
			result := Result[NodeType, CostType]{
				Path:          state.path(currentItem.Node),
				TotalCost:     currentItem.GScore,
				ExpandedNodes: state.expanded,
				Found:         true,
			}
			state.logger.V(1).Info("search finished",
				"expanded", result.ExpandedNodes,
				"pathLength", len(result.Path),
				"cost", result.TotalCost,
			)
			return result, nil
		}
	}
}

// SearchTo is Search with a single goal node.
func SearchTo[NodeType comparable, CostType Cost](
	contextObject context.Context,
	graph Graph[NodeType, CostType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType, CostType],
	options ...Option,
) (Result[NodeType, CostType], error) {
	isGoal := func(node NodeType) bool { return node == goalNode }
	return Search(contextObject, graph, startNode, isGoal, heuristic, options...)
}
