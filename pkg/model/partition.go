package model

import "github.com/google/uuid"

// Partition is the set of nodes a single source contributes to the
// store. Insertion order is not meaningful; a node id appears at most
// once.
type Partition struct {
	Nodes map[uuid.UUID]Node
}

// NewPartition builds a Partition from a node slice, annotating each
// with sourceID and rejecting nothing — duplicate ids overwrite, which
// can only happen if the same source's poll produced two nodes sharing
// an identity (a decoder bug upstream).
func NewPartition(sourceID SourceId, nodes []Node) Partition {
	p := Partition{Nodes: make(map[uuid.UUID]Node, len(nodes))}
	for _, n := range nodes {
		p.Nodes[n.ID] = n.WithSourceID(sourceID)
	}
	return p
}

// Routers returns every Router node in the partition.
func (p Partition) Routers() []Node {
	out := make([]Node, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		if n.Info.Kind == NodeKindRouter {
			out = append(out, n)
		}
	}
	return out
}

// Networks returns every Network node in the partition.
func (p Partition) Networks() []Node {
	out := make([]Node, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		if n.Info.Kind == NodeKindNetwork {
			out = append(out, n)
		}
	}
	return out
}
