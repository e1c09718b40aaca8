package isis

import (
	"net/netip"
	"sort"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
)

// Consolidate resolves pseudonode prefixes over a fully-lifted set of
// nodes: for every pseudonode Network it resolves the placeholder
// prefix by intersecting its candidate neighbors' advertised IP
// reachability. Nodes whose prefix can't be resolved are left with the
// placeholder and reported through failures (soft-fail, never aborts
// the pass).
func Consolidate(nodes []model.Node) (consolidated []model.Node, failures []error) {
	routersByLspID := map[model.LspId]*model.Router{}
	for i := range nodes {
		if nodes[i].Info.Kind != model.NodeKindRouter {
			continue
		}
		r := nodes[i].Info.Router
		if r.ProtocolData == nil || r.ProtocolData.IsIs == nil {
			continue
		}
		routersByLspID[r.ProtocolData.IsIs.LspID] = r
	}

	for i := range nodes {
		if nodes[i].Info.Kind != model.NodeKindNetwork {
			continue
		}
		network := nodes[i].Info.Network
		if network.ProtocolData == nil || network.ProtocolData.IsIs == nil {
			continue
		}
		pseudo := network.ProtocolData.IsIs

		prefix, err := resolvePseudonodePrefix(*pseudo, routersByLspID)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		network.Prefix = prefix
		nodes[i].RecomputeNetworkID()
	}

	return nodes, failures
}

// resolvePseudonodePrefix narrows the pseudonode's neighbor set down to
// a single resolved prefix, or reports why it couldn't.
func resolvePseudonodePrefix(pseudo model.IsIsData, routersByLspID map[model.LspId]*model.Router) (netip.Prefix, error) {
	neighbors := pseudo.FindExtendedISReachability()
	if len(neighbors) == 0 {
		return netip.Prefix{}, errs.NewSemantic("isis: pseudonode %s has no #22 neighbor list", pseudo.LspID)
	}

	candidates := candidateRouters(neighbors, pseudo.IsLevel, routersByLspID, true)
	if len(candidates) < 2 {
		candidates = candidateRouters(neighbors, pseudo.IsLevel, routersByLspID, false)
		disLspID := model.LspId{SystemID: pseudo.LspID.SystemID, Pseudonode: 0, Fragment: 0}
		if dis, ok := routersByLspID[disLspID]; ok && !containsRouter(candidates, dis) {
			candidates = append(candidates, dis)
		}
	}
	if len(candidates) == 0 {
		return netip.Prefix{}, errs.NewSemantic("isis: couldn't resolve prefix for pseudonode %s: no candidate routers", pseudo.LspID)
	}

	prefixSet, ok := intersectReachablePrefixes(candidates)
	if !ok || len(prefixSet) == 0 {
		return netip.Prefix{}, errs.NewSemantic("isis: couldn't resolve prefix for pseudonode %s: empty intersection", pseudo.LspID)
	}

	return pickPrefix(prefixSet), nil
}

func containsRouter(routers []*model.Router, target *model.Router) bool {
	for _, r := range routers {
		if r == target {
			return true
		}
	}
	return false
}

// candidateRouters collects the Router-node facets for the pseudonode's
// neighbor set. When matchLevel is true, only routers whose is_level
// equals level are included.
func candidateRouters(neighbors []model.ISNeighbor, level model.IsLevel, routersByLspID map[model.LspId]*model.Router, matchLevel bool) []*model.Router {
	var out []*model.Router
	for _, n := range neighbors {
		lspID := model.LspId{SystemID: n.NeighborSystemID, Pseudonode: n.Pseudonode, Fragment: 0}
		router, ok := routersByLspID[lspID]
		if !ok {
			continue
		}
		if matchLevel && router.ProtocolData.IsIs.IsLevel != level {
			continue
		}
		out = append(out, router)
	}
	return out
}

// intersectReachablePrefixes computes the set intersection of every
// candidate's #135 Extended IP Reachability prefixes. ok is false if any
// candidate carries no #135 TLV at all (an empty set can't meaningfully
// intersect).
func intersectReachablePrefixes(candidates []*model.Router) (map[netip.Prefix]struct{}, bool) {
	var result map[netip.Prefix]struct{}
	for _, router := range candidates {
		reach := router.ProtocolData.IsIs.FindExtendedIPReachability()
		if len(reach) == 0 {
			return nil, false
		}
		current := map[netip.Prefix]struct{}{}
		for _, r := range reach {
			current[r.Prefix] = struct{}{}
		}
		if result == nil {
			result = current
			continue
		}
		next := map[netip.Prefix]struct{}{}
		for p := range result {
			if _, ok := current[p]; ok {
				next[p] = struct{}{}
			}
		}
		result = next
	}
	return result, true
}

// pickPrefix applies the tie-break when more than one prefix survives
// intersection: longest prefix length first, then lexicographically
// smallest textual representation.
func pickPrefix(set map[netip.Prefix]struct{}) netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(set))
	for p := range set {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		bi, bj := prefixes[i].Bits(), prefixes[j].Bits()
		if bi != bj {
			return bi > bj
		}
		return prefixes[i].String() < prefixes[j].String()
	})
	return prefixes[0]
}
