package ospf

import (
	"net/netip"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
	"github.com/netgraph-io/netgraph/pkg/util"
)

// Lift converts one decoded LsdbEntry into a Node: Router-LSA to a
// Router node, Network-LSA to a Network node, Summary-LSA (IP network)
// to a Network node carrying a summary facet, and every other LSA type
// skipped — nil, nil is the "parsed fine, nothing to lift" sentinel the
// rest of consolidation expects.
func Lift(entry *LsdbEntry) (*model.Node, error) {
	switch entry.LSA.Header.Type {
	case model.LSATypeRouter:
		router, err := liftRouter(entry)
		if err != nil {
			return nil, err
		}
		node := model.NewRouterNode(*router, "")
		return &node, nil
	case model.LSATypeNetwork:
		network, err := liftNetwork(entry)
		if err != nil {
			return nil, err
		}
		node := model.NewNetworkNode(*network, "")
		return &node, nil
	case model.LSATypeSummaryIP:
		network, err := liftSummary(entry)
		if err != nil {
			return nil, err
		}
		node := model.NewNetworkNode(*network, "")
		return &node, nil
	default:
		return nil, nil
	}
}

func liftRouter(entry *LsdbEntry) (*model.Router, error) {
	body := entry.LSA.Router
	if body == nil {
		return nil, errs.NewSemantic("router-lsa: expected router body, found none")
	}

	routerID, err := model.NewRouterIDv4(entry.LSA.Header.AdvertisingRouter)
	if err != nil {
		return nil, errs.NewConversion("router-lsa: advertising router: %v", err)
	}

	perArea := map[netip.Addr]model.AreaFacet{}
	facet := perArea[entry.AreaID]
	linkMetrics := map[netip.Addr]uint16{}

	var interfaces []netip.Addr
	for _, link := range body.Links {
		switch link.Type {
		case model.RouterLinkPointToPoint:
			facet.P2P++
		case model.RouterLinkTransit:
			facet.Transit++
		case model.RouterLinkVirtual:
			// virtual links don't contribute to area link-type totals
		case model.RouterLinkStub:
			facet.Stub++
		}
		interfaces = append(interfaces, link.LinkData)
		linkMetrics[link.LinkData] = link.Metric
	}
	perArea[entry.AreaID] = facet

	payload := model.OspfPayload{
		Kind: model.OspfPayloadRouter,
		Router: &model.OspfRouterPayload{
			PerAreaFacets:         perArea,
			LinkMetrics:           linkMetrics,
			IsASBR:                body.IsASBR,
			IsVirtualLinkEndpoint: body.IsVirtualLinkEndpoint,
		},
	}

	return &model.Router{
		ID:         routerID,
		Interfaces: interfaces,
		ProtocolData: &model.ProtocolData{
			Kind: model.ProtocolKindOspf,
			Ospf: &model.OspfData{
				AreaID:            entry.AreaID,
				LinkStateID:       entry.LSA.Header.LinkStateID,
				AdvertisingRouter: entry.LSA.Header.AdvertisingRouter,
				Checksum:          entry.LSA.Header.Checksum,
				LSA:               entry.LSA,
				Payload:           payload,
			},
		},
	}, nil
}

func liftNetwork(entry *LsdbEntry) (*model.Network, error) {
	body := entry.LSA.Network
	if body == nil {
		return nil, errs.NewSemantic("network-lsa: expected network body, found none")
	}

	prefix, err := util.WithNetmask(entry.LSA.Header.LinkStateID, body.NetworkMask)
	if err != nil {
		return nil, errs.NewConversion("network-lsa: %v", err)
	}

	var attached []model.RouterId
	for _, a := range body.AttachedRouters {
		id, err := model.NewRouterIDv4(a)
		if err != nil {
			return nil, errs.NewConversion("network-lsa: attached router: %v", err)
		}
		attached = append(attached, id)
	}

	return &model.Network{
		Prefix: prefix,
		ProtocolData: &model.ProtocolData{
			Kind: model.ProtocolKindOspf,
			Ospf: &model.OspfData{
				AreaID:            entry.AreaID,
				LinkStateID:       entry.LSA.Header.LinkStateID,
				AdvertisingRouter: entry.LSA.Header.AdvertisingRouter,
				Checksum:          entry.LSA.Header.Checksum,
				LSA:               entry.LSA,
				Payload:           model.OspfPayload{Kind: model.OspfPayloadNetwork, Network: &model.OspfNetworkPayload{}},
			},
		},
		AttachedRouters: attached,
	}, nil
}

func liftSummary(entry *LsdbEntry) (*model.Network, error) {
	body := entry.LSA.Summary
	if body == nil {
		return nil, errs.NewSemantic("summary-lsa: expected summary body, found none")
	}

	prefix, err := util.WithNetmask(entry.LSA.Header.LinkStateID, body.NetworkMask)
	if err != nil {
		return nil, errs.NewConversion("summary-lsa: %v", err)
	}

	originABR, err := model.NewRouterIDv4(entry.LSA.Header.AdvertisingRouter)
	if err != nil {
		return nil, errs.NewConversion("summary-lsa: advertising router: %v", err)
	}

	return &model.Network{
		Prefix: prefix,
		ProtocolData: &model.ProtocolData{
			Kind: model.ProtocolKindOspf,
			Ospf: &model.OspfData{
				AreaID:            entry.AreaID,
				LinkStateID:       entry.LSA.Header.LinkStateID,
				AdvertisingRouter: entry.LSA.Header.AdvertisingRouter,
				Checksum:          entry.LSA.Header.Checksum,
				LSA:               entry.LSA,
				Payload: model.OspfPayload{
					Kind:    model.OspfPayloadSummaryNetwork,
					Summary: &model.OspfSummaryPayload{Metric: body.Metric, OriginABR: originABR},
				},
			},
		},
	}, nil
}
