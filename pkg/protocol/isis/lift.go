package isis

import (
	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
)

// Lift converts one decoded LSP into its graph node: a
// non-pseudonode LSP (pseudonode byte == 0) becomes a Router; a
// pseudonode LSP becomes a Network with the 0.0.0.0/32 placeholder
// prefix, pending resolution by Consolidate's pass C.
func Lift(rec LspRecord) (model.Node, error) {
	data := rec.Data
	protocolData := &model.ProtocolData{Kind: model.ProtocolKindIsIs, IsIs: &data}

	if !data.LspID.IsPseudonode() {
		router := model.Router{
			ID:           model.NewRouterIDIsIs(rec.SystemID),
			ProtocolData: protocolData,
		}
		return model.NewRouterNode(router, data.Hostname()), nil
	}

	neighbors := data.FindExtendedISReachability()
	if len(neighbors) == 0 {
		return model.Node{}, errs.NewSemantic("isis: pseudonode %s has no #22 neighbor list", data.LspID)
	}

	network := model.Network{
		Prefix:       model.PseudonodePlaceholder,
		ProtocolData: protocolData,
	}
	for _, n := range neighbors {
		network.AppendAttachedRouter(model.NewRouterIDIsIs(n.NeighborSystemID))
	}
	return model.NewNetworkNode(network, data.Hostname()), nil
}
