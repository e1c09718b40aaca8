package federation

import (
	"net/netip"
	"testing"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
)

func routerFacet(t *testing.T, id model.RouterId, p model.OspfRouterPayload) model.Node {
	t.Helper()
	r := model.Router{
		ID: id,
		ProtocolData: &model.ProtocolData{
			Kind: model.ProtocolKindOspf,
			Ospf: &model.OspfData{Payload: model.OspfPayload{Kind: model.OspfPayloadRouter, Router: &p}},
		},
	}
	return model.NewRouterNode(r, "")
}

func networkFacet(t *testing.T, prefix string, attached []model.RouterId, summaries []model.OspfSummary) model.Node {
	t.Helper()
	n := model.Network{
		Prefix: netip.MustParsePrefix(prefix),
		ProtocolData: &model.ProtocolData{
			Kind: model.ProtocolKindOspf,
			Ospf: &model.OspfData{Payload: model.OspfPayload{
				Kind:    model.OspfPayloadNetwork,
				Network: &model.OspfNetworkPayload{Summaries: summaries},
			}},
		},
		AttachedRouters: attached,
	}
	return model.NewNetworkNode(n, "")
}

func TestOSPFFederator_MergeRouters_DisagreementScenario(t *testing.T) {
	r1, _ := model.NewRouterIDv4(netip.MustParseAddr("10.0.0.1"))
	areaZero := netip.MustParseAddr("0.0.0.0")
	areaOne := netip.MustParseAddr("0.0.0.1")

	a := routerFacet(t, r1, model.OspfRouterPayload{
		IsASBR:        true,
		PerAreaFacets: map[netip.Addr]model.AreaFacet{areaZero: {P2P: 2, Transit: 1}},
	})
	b := routerFacet(t, r1, model.OspfRouterPayload{
		IsASBR:        false,
		PerAreaFacets: map[netip.Addr]model.AreaFacet{areaOne: {Stub: 3}},
	})

	fed := OSPFFederator{}
	if err := fed.CanMergeRouterFacets([]model.Node{a, b}); err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
	merged := fed.MergeRouters([]model.Node{a, b})
	payload := merged.Info.Router.ProtocolData.Ospf.Payload.Router

	if !payload.IsASBR {
		t.Errorf("expected is_asbr to OR true across facets")
	}
	if !payload.IsABR() {
		t.Errorf("expected is_abr true: two distinct areas present")
	}
	totals := payload.LinkTotals()
	if totals.P2P != 2 || totals.Transit != 1 || totals.Stub != 3 {
		t.Errorf("expected totals p2p=2 transit=1 stub=3, got %+v", totals)
	}
	if len(payload.PerAreaFacets) != 2 {
		t.Errorf("expected both areas to survive the merge unchanged, got %d", len(payload.PerAreaFacets))
	}
}

func TestOSPFFederator_MergeRouters_Permutation(t *testing.T) {
	r1, _ := model.NewRouterIDv4(netip.MustParseAddr("10.0.0.1"))
	areaZero := netip.MustParseAddr("0.0.0.0")
	areaOne := netip.MustParseAddr("0.0.0.1")

	a := routerFacet(t, r1, model.OspfRouterPayload{
		PerAreaFacets: map[netip.Addr]model.AreaFacet{areaZero: {P2P: 2}},
	})
	b := routerFacet(t, r1, model.OspfRouterPayload{
		PerAreaFacets: map[netip.Addr]model.AreaFacet{areaOne: {Stub: 1}},
	})

	fed := OSPFFederator{}
	forward := fed.MergeRouters([]model.Node{a, b}).Info.Router.ProtocolData.Ospf.Payload.Router.LinkTotals()
	backward := fed.MergeRouters([]model.Node{b, a}).Info.Router.ProtocolData.Ospf.Payload.Router.LinkTotals()
	if forward != backward {
		t.Errorf("expected totals to be invariant under facet permutation, got %+v vs %+v", forward, backward)
	}
}

func TestOSPFFederator_MergeNetworks_UnionsAttachedRoutersAndSummaries(t *testing.T) {
	a, _ := model.NewRouterIDv4(netip.MustParseAddr("10.0.0.1"))
	b, _ := model.NewRouterIDv4(netip.MustParseAddr("10.0.0.2"))
	c, _ := model.NewRouterIDv4(netip.MustParseAddr("10.0.0.3"))

	facetOne := networkFacet(t, "10.0.1.0/24", []model.RouterId{a, b}, nil)
	facetTwo := networkFacet(t, "10.0.1.0/24", []model.RouterId{b}, []model.OspfSummary{{Metric: 40, OriginABR: c}})

	fed := OSPFFederator{}
	if err := fed.CanMergeNetworkFacets([]model.Node{facetOne, facetTwo}); err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
	merged := fed.MergeNetworks([]model.Node{facetOne, facetTwo})

	if len(merged.Info.Network.AttachedRouters) != 2 {
		t.Errorf("expected attached_routers union of {a,b}, got %v", merged.Info.Network.AttachedRouters)
	}
	summaries := merged.Info.Network.ProtocolData.Ospf.Payload.Network.Summaries
	if len(summaries) != 1 || summaries[0].Metric != 40 {
		t.Errorf("expected one summary with metric 40, got %+v", summaries)
	}
}

func TestOSPFFederator_MergeDoesNotMutateInputFacets(t *testing.T) {
	r1, _ := model.NewRouterIDv4(netip.MustParseAddr("10.0.0.1"))
	areaZero := netip.MustParseAddr("0.0.0.0")
	areaOne := netip.MustParseAddr("0.0.0.1")

	a := routerFacet(t, r1, model.OspfRouterPayload{
		PerAreaFacets: map[netip.Addr]model.AreaFacet{areaZero: {P2P: 2}},
		LinkMetrics:   map[netip.Addr]uint16{netip.MustParseAddr("10.1.0.1"): 10},
	})
	b := routerFacet(t, r1, model.OspfRouterPayload{
		PerAreaFacets: map[netip.Addr]model.AreaFacet{areaOne: {Stub: 3}},
	})

	OSPFFederator{}.MergeRouters([]model.Node{a, b})

	aPayload := a.Info.Router.ProtocolData.Ospf.Payload.Router
	if len(aPayload.PerAreaFacets) != 1 {
		t.Errorf("merge must not write the other facet's areas into the input: %v", aPayload.PerAreaFacets)
	}

	abr, _ := model.NewRouterIDv4(netip.MustParseAddr("10.0.0.9"))
	n1 := networkFacet(t, "10.0.1.0/24", []model.RouterId{r1}, nil)
	n2 := networkFacet(t, "10.0.1.0/24", nil, []model.OspfSummary{{Metric: 40, OriginABR: abr}})

	OSPFFederator{}.MergeNetworks([]model.Node{n1, n2})

	if len(n1.Info.Network.ProtocolData.Ospf.Payload.Network.Summaries) != 0 {
		t.Errorf("merge must not append summaries into the input facet")
	}
}

func TestOSPFFederator_CanMergeRouterFacets_Rejections(t *testing.T) {
	r1, _ := model.NewRouterIDv4(netip.MustParseAddr("10.0.0.1"))
	r2, _ := model.NewRouterIDv4(netip.MustParseAddr("10.0.0.2"))
	fed := OSPFFederator{}

	if err := fed.CanMergeRouterFacets(nil); err == nil || err.(*errs.FederationError).Kind != errs.EmptyFacets {
		t.Errorf("expected EmptyFacets, got %v", err)
	}

	net := networkFacet(t, "10.0.1.0/24", nil, nil)
	router := routerFacet(t, r1, model.OspfRouterPayload{})
	if err := fed.CanMergeRouterFacets([]model.Node{router, net}); err == nil || err.(*errs.FederationError).Kind != errs.MixedNodeKinds {
		t.Errorf("expected MixedNodeKinds, got %v", err)
	}

	other := routerFacet(t, r2, model.OspfRouterPayload{})
	if err := fed.CanMergeRouterFacets([]model.Node{router, other}); err == nil || err.(*errs.FederationError).Kind != errs.MixedIdentity {
		t.Errorf("expected MixedIdentity, got %v", err)
	}
}

func TestOSPFFederator_CanMergeNetworkFacets_MixedIdentity(t *testing.T) {
	fed := OSPFFederator{}
	one := networkFacet(t, "10.0.1.0/24", nil, nil)
	two := networkFacet(t, "10.0.2.0/24", nil, nil)
	if err := fed.CanMergeNetworkFacets([]model.Node{one, two}); err == nil || err.(*errs.FederationError).Kind != errs.MixedIdentity {
		t.Errorf("expected MixedIdentity, got %v", err)
	}
}
