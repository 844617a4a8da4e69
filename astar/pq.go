package astar

import "github.com/google/btree"

const frontierDegree = 32

type PriorityQueueItem[NodeType comparable, CostType Cost] struct {
	Node   NodeType
	GScore CostType
	FCost  CostType
	seq    uint64
}

// PriorityQueue orders open nodes by f cost. Ties prefer the larger g cost,
// then the earlier insertion. Each node appears at most once.
type PriorityQueue[NodeType comparable, CostType Cost] struct {
	tree  *btree.BTreeG[*PriorityQueueItem[NodeType, CostType]]
	items map[NodeType]*PriorityQueueItem[NodeType, CostType]
	seq   uint64
}

func lessItem[NodeType comparable, CostType Cost](a, b *PriorityQueueItem[NodeType, CostType]) bool {
	if a.FCost != b.FCost {
		return a.FCost < b.FCost
	}
	if a.GScore != b.GScore {
		return a.GScore > b.GScore
	}
	return a.seq < b.seq
}

func NewPriorityQueue[NodeType comparable, CostType Cost]() *PriorityQueue[NodeType, CostType] {
	return &PriorityQueue[NodeType, CostType]{
		tree:  btree.NewG(frontierDegree, lessItem[NodeType, CostType]),
		items: make(map[NodeType]*PriorityQueueItem[NodeType, CostType]),
	}
}

func (queue *PriorityQueue[NodeType, CostType]) Len() int { return queue.tree.Len() }

// Push adds node, or re-scores it if it is already queued.
func (queue *PriorityQueue[NodeType, CostType]) Push(node NodeType, gScore, fCost CostType) *PriorityQueueItem[NodeType, CostType] {
	if item, ok := queue.items[node]; ok {
		queue.Fix(item, gScore, fCost)
		return item
	}
	queue.seq++
	item := &PriorityQueueItem[NodeType, CostType]{Node: node, GScore: gScore, FCost: fCost, seq: queue.seq}
	queue.tree.ReplaceOrInsert(item)
	queue.items[node] = item
	return item
}

// Pop removes and returns the item with the lowest f cost.
func (queue *PriorityQueue[NodeType, CostType]) Pop() (*PriorityQueueItem[NodeType, CostType], bool) {
	item, ok := queue.tree.DeleteMin()
	if !ok {
		return nil, false
	}
	delete(queue.items, item.Node)
	return item, true
}

// Fix re-scores a queued item and moves it to its new position.
func (queue *PriorityQueue[NodeType, CostType]) Fix(item *PriorityQueueItem[NodeType, CostType], gScore, fCost CostType) {
	queue.tree.Delete(item)
	item.GScore = gScore
	item.FCost = fCost
	queue.seq++
	item.seq = queue.seq
	queue.tree.ReplaceOrInsert(item)
}

func (queue *PriorityQueue[NodeType, CostType]) Get(node NodeType) (*PriorityQueueItem[NodeType, CostType], bool) {
	item, ok := queue.items[node]
	return item, ok
}

// Nodes returns the queued nodes as a set.
func (queue *PriorityQueue[NodeType, CostType]) Nodes() map[NodeType]bool {
	nodes := make(map[NodeType]bool, len(queue.items))
	for node := range queue.items {
		nodes[node] = true
	}
	return nodes
}
