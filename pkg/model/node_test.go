package model

import (
	"net/netip"
	"testing"
)

func TestNewRouterNode_IDInvariant(t *testing.T) {
	id, _ := NewRouterIDv4(netip.MustParseAddr("10.0.0.1"))
	n := NewRouterNode(Router{ID: id}, "")

	if n.ID != id.ToUUIDv5() {
		t.Errorf("Node.ID must equal RouterId.ToUUIDv5()")
	}
	if n.Label != "Router" {
		t.Errorf("expected default label 'Router', got %q", n.Label)
	}
}

func TestNewNetworkNode_IDInvariant(t *testing.T) {
	prefix := netip.MustParsePrefix("10.0.1.0/24")
	n := NewNetworkNode(Network{Prefix: prefix}, "")

	if n.ID != UUIDv5(prefix.String()) {
		t.Errorf("Node.ID must equal uuid_v5(\"<prefix>\")")
	}
	if n.Label != "Network" {
		t.Errorf("expected default label 'Network', got %q", n.Label)
	}
}

func TestRecomputeNetworkID(t *testing.T) {
	n := NewNetworkNode(Network{Prefix: PseudonodePlaceholder}, "")
	oldID := n.ID

	n.Info.Network.Prefix = netip.MustParsePrefix("172.21.14.0/24")
	n.RecomputeNetworkID()

	if n.ID == oldID {
		t.Errorf("RecomputeNetworkID should change the id after the prefix changes")
	}
	if n.ID != UUIDv5("172.21.14.0/24") {
		t.Errorf("RecomputeNetworkID must preserve the prefix<->id invariant")
	}
}

func TestWithSourceID(t *testing.T) {
	id, _ := NewRouterIDv4(netip.MustParseAddr("10.0.0.1"))
	n := NewRouterNode(Router{ID: id}, "")
	src, _ := NewRouterIDv4(netip.MustParseAddr("10.0.0.1"))

	annotated := n.WithSourceID(src)
	if annotated.SourceID == nil || !annotated.SourceID.Equal(src) {
		t.Errorf("WithSourceID must set SourceID")
	}
	if n.SourceID != nil {
		t.Errorf("WithSourceID must not mutate the receiver")
	}
}

func TestClone_DeepCopiesSlices(t *testing.T) {
	id, _ := NewRouterIDv4(netip.MustParseAddr("10.0.0.1"))
	n := NewRouterNode(Router{ID: id, Interfaces: []netip.Addr{netip.MustParseAddr("10.0.0.1")}}, "")

	clone := n.Clone()
	clone.Info.Router.Interfaces[0] = netip.MustParseAddr("10.0.0.2")

	if n.Info.Router.Interfaces[0].String() != "10.0.0.1" {
		t.Errorf("Clone must not share backing arrays with the original")
	}
}
