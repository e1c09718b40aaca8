package model

import "net/netip"

// Router is one facet's view of a router: its identity, the interface
// addresses it's known to carry, and (when decoded from a protocol
// record rather than synthesized) the protocol-specific payload.
type Router struct {
	ID           RouterId
	Interfaces   []netip.Addr
	ProtocolData *ProtocolData
}
