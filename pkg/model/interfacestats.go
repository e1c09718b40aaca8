package model

import "net/netip"

// InterfaceStats is orthogonal to the graph: a snapshot of one
// interface's packet/byte counters, keyed by the interface's IP address
// so it can be matched to a Router's Interfaces entry.
type InterfaceStats struct {
	IPAddress netip.Addr
	RxBytes   uint64
	TxBytes   uint64
	RxPackets uint64
	TxPackets uint64
}
