package model

import "net/netip"

// PseudonodePlaceholder is the initial prefix an IS-IS pseudonode
// Network is created with, before consolidation resolves it from the
// pseudonode's neighbors. A network node left at this value after
// consolidation means prefix resolution failed and was logged — callers
// must tolerate it.
var PseudonodePlaceholder = netip.MustParsePrefix("0.0.0.0/32")

// Network is one facet's view of an IP subnet: its prefix, the routers
// known to be attached to it (duplicates forbidden — callers must use
// AppendAttachedRouter), and its protocol-specific payload.
type Network struct {
	Prefix          netip.Prefix
	ProtocolData    *ProtocolData
	AttachedRouters []RouterId
}

// HasAttachedRouter reports whether r is already present, compared by
// RouterId.ToUUIDv5().
func (n *Network) HasAttachedRouter(r RouterId) bool {
	target := r.ToUUIDv5()
	for _, existing := range n.AttachedRouters {
		if existing.ToUUIDv5() == target {
			return true
		}
	}
	return false
}

// AppendAttachedRouter adds r if it isn't already present.
func (n *Network) AppendAttachedRouter(r RouterId) {
	if n.HasAttachedRouter(r) {
		return
	}
	n.AttachedRouters = append(n.AttachedRouters, r)
}
