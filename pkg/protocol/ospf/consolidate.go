package ospf

import (
	"github.com/netgraph-io/netgraph/pkg/model"
	"github.com/netgraph-io/netgraph/pkg/util"
)

// Consolidate runs both intra-source OSPF passes over one snapshot's
// worth of lifted nodes: Pass A merges summary/detailed network facets
// that share a prefix, and Pass B synthesizes stub networks that never
// got their own Network-LSA. Order matters — Pass B only needs to
// check for an existing network by prefix, so it runs after Pass A has
// finished merging duplicates.
func Consolidate(nodes []model.Node) []model.Node {
	nodes = mergeNetworkFacets(nodes)
	nodes = synthesizeStubNetworks(nodes)
	return nodes
}

// mergeNetworkFacets implements Pass A: group network nodes by prefix,
// and where more than one facet shares a prefix, merge them into a
// single node using the acceptance/base rules.
func mergeNetworkFacets(nodes []model.Node) []model.Node {
	type group struct {
		indices []int
	}
	groups := map[string]*group{}
	var order []string

	for i, n := range nodes {
		if n.Info.Kind != model.NodeKindNetwork {
			continue
		}
		prefix := n.Info.Network.Prefix.String()
		g, ok := groups[prefix]
		if !ok {
			g = &group{}
			groups[prefix] = g
			order = append(order, prefix)
		}
		g.indices = append(g.indices, i)
	}

	merged := make([]model.Node, 0, len(nodes))
	consumed := make(map[int]bool)

	for _, prefix := range order {
		g := groups[prefix]
		if len(g.indices) == 1 {
			continue // nothing to merge; falls through to the pass-through loop below
		}
		facets := make([]model.Node, len(g.indices))
		for i, idx := range g.indices {
			facets[i] = nodes[idx]
			consumed[idx] = true
		}
		merged = append(merged, mergeNetworkGroup(facets))
	}

	for i, n := range nodes {
		if consumed[i] {
			continue
		}
		merged = append(merged, n)
	}
	return merged
}

func isDetailedFacet(n model.Node) bool {
	return n.Info.Network.ProtocolData != nil &&
		n.Info.Network.ProtocolData.Ospf != nil &&
		n.Info.Network.ProtocolData.Ospf.Payload.Kind == model.OspfPayloadNetwork
}

func isSummaryFacet(n model.Node) bool {
	return n.Info.Network.ProtocolData != nil &&
		n.Info.Network.ProtocolData.Ospf != nil &&
		n.Info.Network.ProtocolData.Ospf.Payload.Kind == model.OspfPayloadSummaryNetwork
}

// mergeNetworkGroup merges facets that share a prefix (Pass A).
func mergeNetworkGroup(facets []model.Node) model.Node {
	baseIdx := 0
	for i, f := range facets {
		if isDetailedFacet(f) {
			baseIdx = i
			break
		}
	}
	base := facets[baseIdx].Clone()

	anyDetailed := false
	allSummary := true
	for _, f := range facets {
		if isDetailedFacet(f) {
			anyDetailed = true
		}
		if !isSummaryFacet(f) {
			allSummary = false
		}
	}
	shouldUnion := anyDetailed || allSummary

	if shouldUnion {
		for i, f := range facets {
			if i == baseIdx {
				continue
			}
			for _, r := range f.Info.Network.AttachedRouters {
				base.Info.Network.AppendAttachedRouter(r)
			}
		}
	}

	if base.Info.Network.ProtocolData == nil || base.Info.Network.ProtocolData.Ospf == nil ||
		base.Info.Network.ProtocolData.Ospf.Payload.Network == nil {
		// base is a pure Summary facet chosen because no Detailed
		// facet exists in this group; give it a Network payload so
		// absorbed summaries have somewhere to live, seeded with the
		// base's own summary contribution.
		if base.Info.Network.ProtocolData != nil && base.Info.Network.ProtocolData.Ospf != nil {
			seeded := &model.OspfNetworkPayload{}
			if s := base.Info.Network.ProtocolData.Ospf.Payload.Summary; s != nil {
				seeded.AppendSummary(model.OspfSummary{Metric: s.Metric, OriginABR: s.OriginABR})
			}
			base.Info.Network.ProtocolData.Ospf.Payload = model.OspfPayload{
				Kind:    model.OspfPayloadNetwork,
				Network: seeded,
			}
		}
	}

	if shouldUnion && base.Info.Network.ProtocolData != nil && base.Info.Network.ProtocolData.Ospf != nil {
		netPayload := base.Info.Network.ProtocolData.Ospf.Payload.Network
		for i, f := range facets {
			if i == baseIdx {
				continue
			}
			ospf := f.Info.Network.ProtocolData.Ospf
			if ospf == nil {
				continue
			}
			if ospf.Payload.Kind == model.OspfPayloadNetwork && ospf.Payload.Network != nil {
				for _, s := range ospf.Payload.Network.Summaries {
					netPayload.AppendSummary(s)
				}
			}
			if ospf.Payload.Kind == model.OspfPayloadSummaryNetwork && ospf.Payload.Summary != nil {
				netPayload.AppendSummary(model.OspfSummary{
					Metric:    ospf.Payload.Summary.Metric,
					OriginABR: ospf.Payload.Summary.OriginABR,
				})
			}
		}
	}

	return base
}

// synthesizeStubNetworks implements Pass B: every Router node's
// Router-LSA stub links that have no corresponding Network node get
// one synthesized.
func synthesizeStubNetworks(nodes []model.Node) []model.Node {
	existing := map[string]int{} // prefix string -> index into nodes
	for i, n := range nodes {
		if n.Info.Kind == model.NodeKindNetwork {
			existing[n.Info.Network.Prefix.String()] = i
		}
	}

	for _, n := range nodes {
		if n.Info.Kind != model.NodeKindRouter || n.Info.Router.ProtocolData == nil ||
			n.Info.Router.ProtocolData.Ospf == nil || n.Info.Router.ProtocolData.Ospf.LSA == nil ||
			n.Info.Router.ProtocolData.Ospf.LSA.Router == nil {
			continue
		}
		routerID := n.Info.Router.ID

		for _, link := range n.Info.Router.ProtocolData.Ospf.LSA.Router.Links {
			if link.Type != model.RouterLinkStub {
				continue
			}
			prefix, err := util.WithNetmask(link.LinkID, link.LinkData)
			if err != nil {
				continue
			}
			key := prefix.String()
			if idx, ok := existing[key]; ok {
				nodes[idx].Info.Network.AppendAttachedRouter(routerID)
				continue
			}
			network := model.Network{Prefix: prefix, AttachedRouters: []model.RouterId{routerID}}
			node := model.NewNetworkNode(network, "")
			nodes = append(nodes, node)
			existing[key] = len(nodes) - 1
		}
	}
	return nodes
}
