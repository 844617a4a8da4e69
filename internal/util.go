package internal

import "slices"

// ReconstructPath walks cameFrom back from current and returns the nodes in
// start-to-current order. The walk stops early at a node with no recorded
// predecessor, so the first element is start only when the chain reaches it.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
	start NodeType,
) []NodeType {
	path := []NodeType{current}
	for current != start {
		previousNode, exists := cameFrom[current]
		if !exists {
			break
		}
		path = append(path, previousNode)
		current = previousNode
	}
	slices.Reverse(path)
	return path
}

// MapSlice applies f to every element of in.
func MapSlice[In, Out any](in []In, f func(In) Out) []Out {
	if in == nil {
		return nil
	}
	out := make([]Out, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
