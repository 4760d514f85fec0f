package graph

// Arc is an outgoing edge stored in the adjacency list of its source node.
type Arc[W comparable] struct {
	To     NodeId
	Weight W
}

func MakeArc[W comparable](to NodeId, weight W) Arc[W] {
	return Arc[W]{To: to, Weight: weight}
}

func (a Arc[W]) Destination() NodeId {
	return a.To
}
