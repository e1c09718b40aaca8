// Package federation implements the pluggable ProtocolFederator
// capability that TopologyStore.BuildMergedViewWith uses to decide
// whether a group of same-identity facets may be merged, and how.
//
// OSPFFederator is the default federator. It is data selected per
// MergeConfig, not behavior inherited from the node — a
// different protocol (or a composite that layers OSPF-within-sources
// atop a generic cross-protocol pass) can supply its own
// model.ProtocolFederator value without touching this one.
package federation

import (
	"net/netip"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
)

// OSPFFederator implements model.ProtocolFederator's OSPF rules: it
// only accepts groups that are entirely OSPF Router (or
// entirely OSPF Network) facets sharing one identity.
type OSPFFederator struct{}

var _ model.ProtocolFederator = OSPFFederator{}

// CanMergeRouterFacets enforces: non-empty, every facet is a Router node
// carrying ProtocolData.Ospf with an OspfPayloadRouter payload, and all
// facets share the same RouterId.
func (OSPFFederator) CanMergeRouterFacets(facets []model.Node) error {
	if len(facets) == 0 {
		return &errs.FederationError{Kind: errs.EmptyFacets}
	}
	var identity model.RouterId
	for i, f := range facets {
		if f.Info.Kind != model.NodeKindRouter {
			return &errs.FederationError{Kind: errs.MixedNodeKinds}
		}
		ospf := routerOspfData(f)
		if ospf == nil {
			return &errs.FederationError{Kind: errs.MixedProtocols}
		}
		if ospf.Payload.Kind != model.OspfPayloadRouter || ospf.Payload.Router == nil {
			return &errs.FederationError{Kind: errs.UnsupportedPayload}
		}
		if i == 0 {
			identity = f.Info.Router.ID
		} else if !f.Info.Router.ID.Equal(identity) {
			return &errs.FederationError{Kind: errs.MixedIdentity}
		}
	}
	return nil
}

// CanMergeNetworkFacets enforces the analogous rule for Network nodes,
// OspfPayloadNetwork, and a shared prefix.
func (OSPFFederator) CanMergeNetworkFacets(facets []model.Node) error {
	if len(facets) == 0 {
		return &errs.FederationError{Kind: errs.EmptyFacets}
	}
	var identity string
	for i, f := range facets {
		if f.Info.Kind != model.NodeKindNetwork {
			return &errs.FederationError{Kind: errs.MixedNodeKinds}
		}
		ospf := networkOspfData(f)
		if ospf == nil {
			return &errs.FederationError{Kind: errs.MixedProtocols}
		}
		if ospf.Payload.Kind != model.OspfPayloadNetwork || ospf.Payload.Network == nil {
			return &errs.FederationError{Kind: errs.UnsupportedPayload}
		}
		if i == 0 {
			identity = f.Info.Network.Prefix.String()
		} else if f.Info.Network.Prefix.String() != identity {
			return &errs.FederationError{Kind: errs.MixedIdentity}
		}
	}
	return nil
}

// MergeRouters merges an accepted Router facet group: the base
// facet is the first in input order (precedence by source health/
// timestamp is a planned refinement per DESIGN.md), booleans are OR-ed,
// per-area facets are unioned with component-wise summed link counts,
// is_abr is recomputed from the merged area count, and link metrics are
// last-writer-wins in input order.
func (OSPFFederator) MergeRouters(facets []model.Node) model.Node {
	base := facets[0].Clone()
	merged := base.Info.Router.ProtocolData.Ospf.Payload.Router

	for _, f := range facets[1:] {
		p := routerOspfData(f).Payload.Router
		merged.IsASBR = merged.IsASBR || p.IsASBR
		merged.IsVirtualLinkEndpoint = merged.IsVirtualLinkEndpoint || p.IsVirtualLinkEndpoint
		merged.IsNSSACapable = merged.IsNSSACapable || p.IsNSSACapable

		if merged.PerAreaFacets == nil {
			merged.PerAreaFacets = map[netip.Addr]model.AreaFacet{}
		}
		for area, facet := range p.PerAreaFacets {
			existing := merged.PerAreaFacets[area]
			existing.P2P += facet.P2P
			existing.Transit += facet.Transit
			existing.Stub += facet.Stub
			merged.PerAreaFacets[area] = existing
		}

		if merged.LinkMetrics == nil {
			merged.LinkMetrics = map[netip.Addr]uint16{}
		}
		for ip, metric := range p.LinkMetrics {
			merged.LinkMetrics[ip] = metric // last-writer-wins, see DESIGN.md open question
		}
	}

	return base
}

// MergeNetworks merges an accepted Network facet group: prefer
// a Detailed (Network-LSA) base over a Summary base, union
// attached_routers across all facets by RouterId.ToUUIDv5, and union
// summaries across all facets by (metric, origin_abr uuid).
func (OSPFFederator) MergeNetworks(facets []model.Node) model.Node {
	baseIdx := 0
	for i, f := range facets {
		if networkOspfData(f).Payload.Kind == model.OspfPayloadNetwork {
			baseIdx = i
			break
		}
	}
	base := facets[baseIdx].Clone()
	merged := base.Info.Network.ProtocolData.Ospf.Payload.Network

	for i, f := range facets {
		if i == baseIdx {
			continue
		}
		for _, r := range f.Info.Network.AttachedRouters {
			base.Info.Network.AppendAttachedRouter(r)
		}
		if p := networkOspfData(f).Payload.Network; p != nil {
			for _, s := range p.Summaries {
				merged.AppendSummary(s)
			}
		}
	}

	return base
}

func routerOspfData(n model.Node) *model.OspfData {
	if n.Info.Router == nil || n.Info.Router.ProtocolData == nil {
		return nil
	}
	return n.Info.Router.ProtocolData.Ospf
}

func networkOspfData(n model.Node) *model.OspfData {
	if n.Info.Network == nil || n.Info.Network.ProtocolData == nil {
		return nil
	}
	return n.Info.Network.ProtocolData.Ospf
}
