package model

import "net/netip"

// LSAType is the RFC 2328 §A.4.1 LS type field.
type LSAType uint8

const (
	LSATypeRouter      LSAType = 1
	LSATypeNetwork     LSAType = 2
	LSATypeSummaryIP   LSAType = 3
	LSATypeSummaryASBR LSAType = 4
	LSATypeExternal    LSAType = 5
)

func (t LSAType) String() string {
	switch t {
	case LSATypeRouter:
		return "router"
	case LSATypeNetwork:
		return "network"
	case LSATypeSummaryIP:
		return "summary-ip"
	case LSATypeSummaryASBR:
		return "summary-asbr"
	case LSATypeExternal:
		return "external"
	default:
		return "unknown"
	}
}

// LSAHeader is the common 20-byte RFC 2328 §A.4.1 LSA header.
type LSAHeader struct {
	Age               uint16
	Options           uint8
	Type              LSAType
	LinkStateID       netip.Addr
	AdvertisingRouter netip.Addr
	SequenceNumber    uint32
	Checksum          uint16
	Length            uint16
}

// RouterLinkType is the RFC 2328 §A.4.2 link type field.
type RouterLinkType uint8

const (
	RouterLinkPointToPoint RouterLinkType = 1
	RouterLinkTransit      RouterLinkType = 2
	RouterLinkStub         RouterLinkType = 3
	RouterLinkVirtual      RouterLinkType = 4
)

// RouterLink is one link entry inside a Router-LSA body.
type RouterLink struct {
	LinkID   netip.Addr
	LinkData netip.Addr
	Type     RouterLinkType
	Metric   uint16
}

// RouterLSABody is the RFC 2328 §A.4.2 Router-LSA body.
type RouterLSABody struct {
	IsVirtualLinkEndpoint bool // V bit
	IsASBR                bool // E bit
	Links                 []RouterLink
}

// NetworkLSABody is the RFC 2328 §A.4.3 Network-LSA body.
type NetworkLSABody struct {
	NetworkMask     netip.Addr
	AttachedRouters []netip.Addr
}

// SummaryLSABody is the RFC 2328 §A.4.4/§A.4.5 Summary-LSA body (type 3
// IP-network summaries and type 4 ASBR summaries share this shape; the
// mask is meaningless for type 4 and left zero).
type SummaryLSABody struct {
	NetworkMask netip.Addr
	Metric      uint32
}

// ExternalLSABody is the RFC 2328 §A.4.5 AS-External-LSA body.
type ExternalLSABody struct {
	NetworkMask       netip.Addr
	Metric            uint32
	ForwardingAddress netip.Addr
	ExternalRouteTag  uint32
}

// LSA is a fully decoded RFC 2328 link-state advertisement. Header.Type
// selects which of the body pointers is populated; unsupported types
// (anything the semantic lift doesn't know how to turn into a Node) are
// still represented here with all body pointers nil.
//
// Once decoded an LSA is never mutated — Node/ProtocolData/OspfData
// values across a Router's per-area facets and the federation layer all
// hold a *LSA to the same value, relying on Go's garbage collector for
// its lifetime: it ends when the last referencing Node is dropped.
type LSA struct {
	Header   LSAHeader
	Router   *RouterLSABody
	Network  *NetworkLSABody
	Summary  *SummaryLSABody
	External *ExternalLSABody
}

// OspfData is the OSPF-specific facet of a Router or Network node.
type OspfData struct {
	AreaID            netip.Addr
	LinkStateID       netip.Addr
	AdvertisingRouter netip.Addr
	Checksum          uint16
	LSA               *LSA
	Payload           OspfPayload
}
