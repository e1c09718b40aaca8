package model

import (
	"net/netip"

	"github.com/google/uuid"
)

// NodeKind discriminates the tagged NodeInfo payload.
type NodeKind int

const (
	NodeKindRouter NodeKind = iota
	NodeKindNetwork
)

// NodeInfo is the tagged union a Node carries: exactly one of Router or
// Network is populated, selected by Kind.
type NodeInfo struct {
	Kind    NodeKind
	Router  *Router
	Network *Network
}

// Node is the unit of the merged graph. Its ID is always a deterministic
// function of its payload's identity — RouterId.ToUUIDv5() for routers,
// UUIDv5("<prefix>") for networks — never assigned independently.
type Node struct {
	ID       uuid.UUID
	Label    string
	SourceID *SourceId
	Info     NodeInfo
}

// NewRouterNode builds a Node around a Router, computing its id from the
// RouterId: Node.id == RouterId.to_uuid_v5().
func NewRouterNode(r Router, label string) Node {
	if label == "" {
		label = "Router"
	}
	return Node{
		ID:    r.ID.ToUUIDv5(),
		Label: label,
		Info:  NodeInfo{Kind: NodeKindRouter, Router: &r},
	}
}

// NewNetworkNode builds a Node around a Network, computing its id from
// the prefix: Node.id == uuid_v5("<prefix>").
func NewNetworkNode(n Network, label string) Node {
	if label == "" {
		label = "Network"
	}
	return Node{
		ID:    UUIDv5(n.Prefix.String()),
		Label: label,
		Info:  NodeInfo{Kind: NodeKindNetwork, Network: &n},
	}
}

// RecomputeNetworkID refreshes ID from the current Network prefix. Must
// be called after mutating a pseudonode's placeholder prefix, to
// preserve the prefix<->id invariant.
func (n *Node) RecomputeNetworkID() {
	if n.Info.Kind != NodeKindNetwork || n.Info.Network == nil {
		return
	}
	n.ID = UUIDv5(n.Info.Network.Prefix.String())
}

// WithSourceID returns a copy of n annotated with the given source —
// this is what TopologyStore.replace_partition does to every node on
// insertion into a partition.
func (n Node) WithSourceID(src SourceId) Node {
	n.SourceID = &src
	return n
}

// Clone returns a deep-enough copy of n suitable for handing out of the
// store into a merged view (nodes are never mutated in place once owned
// by a partition).
func (n Node) Clone() Node {
	out := n
	if n.SourceID != nil {
		src := *n.SourceID
		out.SourceID = &src
	}
	switch n.Info.Kind {
	case NodeKindRouter:
		if n.Info.Router != nil {
			r := *n.Info.Router
			r.Interfaces = append([]netip.Addr(nil), r.Interfaces...)
			r.ProtocolData = n.Info.Router.ProtocolData.Clone()
			out.Info.Router = &r
		}
	case NodeKindNetwork:
		if n.Info.Network != nil {
			nw := *n.Info.Network
			nw.AttachedRouters = append([]RouterId(nil), nw.AttachedRouters...)
			nw.ProtocolData = n.Info.Network.ProtocolData.Clone()
			out.Info.Network = &nw
		}
	}
	return out
}
