package astar

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ExpandTask represents a request from the orchestrator to the workers.
type ExpandTask[NodeType comparable, CostType Cost] struct {
	FromNode      NodeType
	Neighbor      Neighbor[NodeType, CostType]
	CurrentGScore CostType
	HeuristicFunc Heuristic[NodeType, CostType]
}

// RelaxProposal is the worker's suggestion for updating a path
type RelaxProposal[NodeType comparable, CostType Cost] struct {
	FromNode NodeType
	ToNode   NodeType
	GScore   CostType
	FCost    CostType
}

// workerPool scores neighbors concurrently. A panicking heuristic stops
// the pool and surfaces as the error of stop.
type workerPool[NodeType comparable, CostType Cost] struct {
	ctx       context.Context
	cancel    context.CancelFunc
	group     *errgroup.Group
	tasks     chan ExpandTask[NodeType, CostType]
	proposals chan RelaxProposal[NodeType, CostType]
}

func startWorkers[NodeType comparable, CostType Cost](parent context.Context, numberOfWorkers int) *workerPool[NodeType, CostType] {
	ctx, cancel := context.WithCancel(parent)
	group, groupCtx := errgroup.WithContext(ctx)
	pool := &workerPool[NodeType, CostType]{
		ctx:       groupCtx,
		cancel:    cancel,
		group:     group,
		tasks:     make(chan ExpandTask[NodeType, CostType]),
		proposals: make(chan RelaxProposal[NodeType, CostType]),
	}
	for i := 0; i < numberOfWorkers; i++ {
		group.Go(pool.work)
	}
	return pool
}

func (pool *workerPool[NodeType, CostType]) work() error {
	for {
		select {
		case <-pool.ctx.Done():
			return nil
		case task := <-pool.tasks:
			estimate, err := callHeuristic(task.HeuristicFunc, task.Neighbor.ID)
			if err != nil {
				return err
			}
			tentativeG := task.CurrentGScore + task.Neighbor.Cost
			proposal := RelaxProposal[NodeType, CostType]{
				FromNode: task.FromNode,
				ToNode:   task.Neighbor.ID,
				GScore:   tentativeG,
				FCost:    tentativeG + estimate,
			}
			select {
			case pool.proposals <- proposal:
			case <-pool.ctx.Done():
				return nil
			}
		}
	}
}

// callHeuristic evaluates heuristic at node, turning a panic into an error.
func callHeuristic[NodeType comparable, CostType Cost](heuristic Heuristic[NodeType, CostType], node NodeType) (estimate CostType, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("astar: heuristic panicked: %v", r)
		}
	}()
	return heuristic(node), nil
}

// stop cancels the workers and waits for them to exit.
func (pool *workerPool[NodeType, CostType]) stop() error {
	pool.cancel()
	return pool.group.Wait()
}
