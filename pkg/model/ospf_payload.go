package model

import "net/netip"

// OspfPayloadKind discriminates the three shapes a per-area OSPF facet
// can take, mirroring the three LSA types the semantic lift recognizes.
type OspfPayloadKind int

const (
	OspfPayloadRouter OspfPayloadKind = iota
	OspfPayloadNetwork
	OspfPayloadSummaryNetwork
)

// AreaFacet counts this router's link types within a single area.
type AreaFacet struct {
	P2P     int
	Transit int
	Stub    int
}

// OspfRouterPayload is the Router-LSA-derived facet of a Router node.
type OspfRouterPayload struct {
	PerAreaFacets         map[netip.Addr]AreaFacet
	LinkMetrics           map[netip.Addr]uint16 // keyed by interface address
	IsASBR                bool
	IsVirtualLinkEndpoint bool
	IsNSSACapable         bool
	DesignatedRouter      netip.Addr // zero value (IsValid()==false) means none advertised
}

// IsABR reports whether this facet spans more than one area, rather
// than trusting the LSA's own B-bit.
func (p *OspfRouterPayload) IsABR() bool {
	return len(p.PerAreaFacets) > 1
}

// LinkTotals sums P2P/Transit/Stub counts across all areas.
func (p *OspfRouterPayload) LinkTotals() AreaFacet {
	var total AreaFacet
	for _, f := range p.PerAreaFacets {
		total.P2P += f.P2P
		total.Transit += f.Transit
		total.Stub += f.Stub
	}
	return total
}

// OspfSummary is one absorbed Summary-LSA contribution to a detailed
// Network node (populated by the consolidation Pass A and the OSPF
// federator's network merge).
type OspfSummary struct {
	Metric    uint32
	OriginABR RouterId
}

// Key returns the dedup key: (metric, origin_abr uuid). Summaries are
// deduplicated by this, not by struct equality.
func (s OspfSummary) Key() (uint32, [16]byte) {
	return s.Metric, s.OriginABR.ToUUIDv5()
}

// OspfNetworkPayload is the Network-LSA-derived facet of a Network
// node — a "detailed" facet in the consolidation passes' terminology.
type OspfNetworkPayload struct {
	Summaries []OspfSummary
}

// HasSummary reports whether an equivalent summary (by OspfSummary.Key)
// is already present.
func (p *OspfNetworkPayload) HasSummary(s OspfSummary) bool {
	m, u := s.Key()
	for _, existing := range p.Summaries {
		em, eu := existing.Key()
		if em == m && eu == u {
			return true
		}
	}
	return false
}

// AppendSummary adds s if an equivalent one isn't already present.
func (p *OspfNetworkPayload) AppendSummary(s OspfSummary) {
	if p.HasSummary(s) {
		return
	}
	p.Summaries = append(p.Summaries, s)
}

// OspfSummaryPayload is the Summary-LSA-derived facet of a Network
// node before consolidation absorbs it into a detailed facet — a
// "summary" facet in the consolidation passes' terminology.
type OspfSummaryPayload struct {
	Metric    uint32
	OriginABR RouterId
}

// OspfPayload is the tagged union attached to an OspfData value.
type OspfPayload struct {
	Kind    OspfPayloadKind
	Router  *OspfRouterPayload
	Network *OspfNetworkPayload
	Summary *OspfSummaryPayload
}

func (p OspfPayload) clone() OspfPayload {
	out := p
	if p.Router != nil {
		r := *p.Router
		if p.Router.PerAreaFacets != nil {
			r.PerAreaFacets = make(map[netip.Addr]AreaFacet, len(p.Router.PerAreaFacets))
			for k, v := range p.Router.PerAreaFacets {
				r.PerAreaFacets[k] = v
			}
		}
		if p.Router.LinkMetrics != nil {
			r.LinkMetrics = make(map[netip.Addr]uint16, len(p.Router.LinkMetrics))
			for k, v := range p.Router.LinkMetrics {
				r.LinkMetrics[k] = v
			}
		}
		out.Router = &r
	}
	if p.Network != nil {
		n := *p.Network
		n.Summaries = append([]OspfSummary(nil), p.Network.Summaries...)
		out.Network = &n
	}
	if p.Summary != nil {
		s := *p.Summary
		out.Summary = &s
	}
	return out
}
