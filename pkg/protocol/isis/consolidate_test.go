package isis

import (
	"net/netip"
	"testing"

	"github.com/netgraph-io/netgraph/pkg/model"
)

func sysID(last byte) model.SystemID { return model.SystemID{0, 0, 0, 0, 0, last} }

func routerNode(id model.SystemID, level model.IsLevel, reach []model.IPReach) model.Node {
	data := model.IsIsData{
		LspID:   model.LspId{SystemID: id},
		IsLevel: level,
		Tlvs:    []model.Tlv{{Kind: model.TlvExtendedIPReachability, IPReach: reach}},
	}
	return model.NewRouterNode(model.Router{
		ID:           model.NewRouterIDIsIs(id),
		ProtocolData: &model.ProtocolData{Kind: model.ProtocolKindIsIs, IsIs: &data},
	}, "")
}

func prefix(s string) netip.Prefix { return netip.MustParsePrefix(s) }

// TestConsolidate_ResolvesPseudonodePrefixByIntersection mirrors the
// worked example: a pseudonode with neighbors r1 and r4, where r1
// advertises two prefixes and r4 advertises one in common.
func TestConsolidate_ResolvesPseudonodePrefixByIntersection(t *testing.T) {
	r1 := routerNode(sysID(1), model.IsLevel1, []model.IPReach{
		{Prefix: prefix("172.21.14.0/24"), Metric: 10},
		{Prefix: prefix("172.21.123.0/24"), Metric: 10},
	})
	r4 := routerNode(sysID(4), model.IsLevel1, []model.IPReach{
		{Prefix: prefix("172.21.14.0/24"), Metric: 10},
	})

	pseudoData := model.IsIsData{
		LspID:   model.LspId{SystemID: sysID(1), Pseudonode: 0x5a},
		IsLevel: model.IsLevel1,
		Tlvs: []model.Tlv{
			{Kind: model.TlvExtendedISReachability, ISNeighbors: []model.ISNeighbor{
				{NeighborSystemID: sysID(1)},
				{NeighborSystemID: sysID(4)},
			}},
		},
	}
	pseudoNode := model.NewNetworkNode(model.Network{
		Prefix:          model.PseudonodePlaceholder,
		ProtocolData:    &model.ProtocolData{Kind: model.ProtocolKindIsIs, IsIs: &pseudoData},
		AttachedRouters: []model.RouterId{model.NewRouterIDIsIs(sysID(1)), model.NewRouterIDIsIs(sysID(4))},
	}, "")

	nodes, failures := Consolidate([]model.Node{r1, r4, pseudoNode})
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}

	resolved := nodes[2]
	want := prefix("172.21.14.0/24")
	if resolved.Info.Network.Prefix != want {
		t.Errorf("expected resolved prefix %s, got %s", want, resolved.Info.Network.Prefix)
	}
	wantID := model.UUIDv5(want.String())
	if resolved.ID != wantID {
		t.Errorf("expected node id recomputed to uuid_v5(%q)", want)
	}
}

func TestConsolidate_EmptyIntersectionFailsSoftlyAndKeepsPlaceholder(t *testing.T) {
	r1 := routerNode(sysID(1), model.IsLevel1, []model.IPReach{{Prefix: prefix("10.0.0.0/24")}})
	r4 := routerNode(sysID(4), model.IsLevel1, []model.IPReach{{Prefix: prefix("10.0.1.0/24")}})

	pseudoData := model.IsIsData{
		LspID:   model.LspId{SystemID: sysID(1), Pseudonode: 0x5a},
		IsLevel: model.IsLevel1,
		Tlvs: []model.Tlv{
			{Kind: model.TlvExtendedISReachability, ISNeighbors: []model.ISNeighbor{
				{NeighborSystemID: sysID(1)},
				{NeighborSystemID: sysID(4)},
			}},
		},
	}
	pseudoNode := model.NewNetworkNode(model.Network{
		Prefix:       model.PseudonodePlaceholder,
		ProtocolData: &model.ProtocolData{Kind: model.ProtocolKindIsIs, IsIs: &pseudoData},
	}, "")

	nodes, failures := Consolidate([]model.Node{r1, r4, pseudoNode})
	if len(failures) != 1 {
		t.Fatalf("expected exactly one soft failure, got %d: %v", len(failures), failures)
	}
	if nodes[2].Info.Network.Prefix != model.PseudonodePlaceholder {
		t.Errorf("expected the placeholder prefix to survive an unresolved intersection")
	}
}

func TestConsolidate_FallsBackAcrossLevelsAndIncludesDIS(t *testing.T) {
	// r4 is level 2 (mismatched), DIS r1 is level 1 but NOT listed as a
	// #22 neighbor of the pseudonode — the level-ignoring fallback must
	// still pick it up.
	dis := routerNode(sysID(1), model.IsLevel1, []model.IPReach{{Prefix: prefix("10.0.5.0/24")}})
	r4 := routerNode(sysID(4), model.IsLevel2, []model.IPReach{{Prefix: prefix("10.0.5.0/24")}})

	pseudoData := model.IsIsData{
		LspID:   model.LspId{SystemID: sysID(1), Pseudonode: 0x5a},
		IsLevel: model.IsLevel1,
		Tlvs: []model.Tlv{
			{Kind: model.TlvExtendedISReachability, ISNeighbors: []model.ISNeighbor{
				{NeighborSystemID: sysID(4)},
			}},
		},
	}
	pseudoNode := model.NewNetworkNode(model.Network{
		Prefix:       model.PseudonodePlaceholder,
		ProtocolData: &model.ProtocolData{Kind: model.ProtocolKindIsIs, IsIs: &pseudoData},
	}, "")

	nodes, failures := Consolidate([]model.Node{dis, r4, pseudoNode})
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	want := prefix("10.0.5.0/24")
	if nodes[2].Info.Network.Prefix != want {
		t.Errorf("expected %s via the DIS fallback, got %s", want, nodes[2].Info.Network.Prefix)
	}
}
