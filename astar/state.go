package astar

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/pdrpinto/qpath/internal"
)

// searchState is the orchestrator side of a search, shared by Search and Stepper.
type searchState[NodeType comparable, CostType Cost] struct {
	parent    context.Context
	graph     Graph[NodeType, CostType]
	start     NodeType
	goal      Goal[NodeType]
	heuristic Heuristic[NodeType, CostType]
	logger    logr.Logger

	maxExpansions int
	expanded      int

	openSet           *PriorityQueue[NodeType, CostType]
	closedSet         map[NodeType]bool
	cameFrom          map[NodeType]NodeType
	pathCostFromStart map[NodeType]CostType

	workers *workerPool[NodeType, CostType]
}

func newSearchState[NodeType comparable, CostType Cost](
	contextObject context.Context,
	graph Graph[NodeType, CostType],
	startNode NodeType,
	goal Goal[NodeType],
	heuristic Heuristic[NodeType, CostType],
	searchOptions Options,
) (*searchState[NodeType, CostType], error) {
	// The start estimate runs before the workers exist so a panic here has
	// nothing to leak.
	startEstimate, err := callHeuristic(heuristic, startNode)
	if err != nil {
		return nil, err
	}
	state := &searchState[NodeType, CostType]{
		parent:            contextObject,
		graph:             graph,
		start:             startNode,
		goal:              goal,
		heuristic:         heuristic,
		logger:            searchOptions.Logger.WithName("astar"),
		maxExpansions:     searchOptions.MaxExpansions,
		openSet:           NewPriorityQueue[NodeType, CostType](),
		closedSet:         make(map[NodeType]bool),
		cameFrom:          make(map[NodeType]NodeType),
		pathCostFromStart: map[NodeType]CostType{startNode: 0},
		workers:           startWorkers[NodeType, CostType](contextObject, searchOptions.NumberOfWorkers),
	}
	state.openSet.Push(startNode, 0, startEstimate)
	return state, nil
}

func (state *searchState[NodeType, CostType]) close() { _ = state.workers.stop() }

// expand pops the best open node and relaxes its neighbors. It returns the
// popped item and found=true without expanding when the item is a goal.
func (state *searchState[NodeType, CostType]) expand() (*PriorityQueueItem[NodeType, CostType], bool, error) {
	if err := state.workers.ctx.Err(); err != nil {
		return nil, false, state.interrupted()
	}
	if state.maxExpansions > 0 && state.expanded >= state.maxExpansions {
		return nil, false, fmt.Errorf("%w after %d nodes", ErrExpansionLimit, state.expanded)
	}

	currentItem, ok := state.openSet.Pop()
	if !ok {
		return nil, false, ErrNoPath
	}
	currentNode := currentItem.Node
	state.closedSet[currentNode] = true
	state.expanded++

	if state.goal(currentNode) {
		return currentItem, true, nil
	}

	neighbors := state.graph.Neighbors(currentNode)
	for _, neighbor := range neighbors {
		if neighbor.Cost < 0 {
			return nil, false, fmt.Errorf("%w: %v -> %v costs %v", ErrNegativeCost, currentNode, neighbor.ID, neighbor.Cost)
		}
	}
	state.logger.V(2).Info("expand", "node", currentNode, "g", currentItem.GScore, "neighbors", len(neighbors))

	// Tasks are sent while proposals are drained so a pool smaller than
	// the neighbor list cannot block.
	sent, received := 0, 0
	for received < len(neighbors) {
		var tasks chan<- ExpandTask[NodeType, CostType]
		var task ExpandTask[NodeType, CostType]
		if sent < len(neighbors) {
			tasks = state.workers.tasks
			task = ExpandTask[NodeType, CostType]{
				FromNode:      currentNode,
				Neighbor:      neighbors[sent],
				CurrentGScore: currentItem.GScore,
				HeuristicFunc: state.heuristic,
			}
		}
		select {
		case <-state.workers.ctx.Done():
			return nil, false, state.interrupted()
		case tasks <- task:
			sent++
		case proposal := <-state.workers.proposals:
			received++
			state.relax(proposal)
		}
	}
	return currentItem, false, nil
}

func (state *searchState[NodeType, CostType]) relax(proposal RelaxProposal[NodeType, CostType]) {
	if state.closedSet[proposal.ToNode] {
		return
	}
	currentG, exists := state.pathCostFromStart[proposal.ToNode]
	if exists && proposal.GScore >= currentG {
		return
	}
	state.pathCostFromStart[proposal.ToNode] = proposal.GScore
	state.cameFrom[proposal.ToNode] = proposal.FromNode
	state.openSet.Push(proposal.ToNode, proposal.GScore, proposal.FCost)
}

// interrupted reports why the worker context ended: a worker failure, or
// the caller's context.
func (state *searchState[NodeType, CostType]) interrupted() error {
	if err := state.workers.stop(); err != nil {
		return err
	}
	if err := state.parent.Err(); err != nil {
		return err
	}
	return context.Canceled
}

func (state *searchState[NodeType, CostType]) path(goalNode NodeType) []NodeType {
	return internal.ReconstructPath(state.cameFrom, goalNode, state.start)
}
