package model

import (
	"fmt"
	"net/netip"
)

// IsLevel is an IS-IS routing level.
type IsLevel int

const (
	IsLevel1 IsLevel = iota
	IsLevel2
	IsLevel1And2
)

func (l IsLevel) String() string {
	switch l {
	case IsLevel1:
		return "L1"
	case IsLevel2:
		return "L2"
	case IsLevel1And2:
		return "L1L2"
	default:
		return "unknown"
	}
}

// LspId is the 8-byte IS-IS LSP identifier: a 6-byte System ID, a
// pseudonode byte, and a fragment byte — textual form
// "XXXX.XXXX.XXXX.PP-FF".
type LspId struct {
	SystemID   SystemID
	Pseudonode byte
	Fragment   byte
}

// IsPseudonode reports whether this LSP id names a pseudonode.
func (id LspId) IsPseudonode() bool {
	return id.Pseudonode != 0
}

// IsPseudonodeOf reports whether id is a pseudonode originated by
// parent's DIS — same System ID, id is a pseudonode, parent is not.
func (id LspId) IsPseudonodeOf(parent LspId) bool {
	return id.IsPseudonode() && !parent.IsPseudonode() && id.SystemID == parent.SystemID
}

func (id LspId) String() string {
	return fmt.Sprintf("%s.%02x-%02x", id.SystemID, id.Pseudonode, id.Fragment)
}

// TlvKind discriminates the IS-IS TLV types the decoder understands.
type TlvKind int

const (
	TlvAreaAddresses TlvKind = iota
	TlvISReachability
	TlvExtendedISReachability
	TlvIPReachability
	TlvExtendedIPReachability
	TlvHostname
	TlvRouterCapability
)

// ISNeighbor is one neighbor entry inside TLV #2/#22.
type ISNeighbor struct {
	NeighborSystemID SystemID
	Pseudonode       byte // 0 for #2 (legacy, no pseudonode byte); from #22 otherwise
	Metric           uint32
}

// IPReach is one prefix entry inside TLV #128/#135.
type IPReach struct {
	Prefix netip.Prefix
	Metric uint32
	Down   bool // up/down bit, meaningful only for #135
}

// RouterCapability is the decoded TLV #242 body.
type RouterCapability struct {
	TERouterID netip.Addr
	FlagD      bool
	FlagS      bool
}

// Tlv is one decoded IS-IS TLV. Exactly the field matching Kind is
// populated.
type Tlv struct {
	Kind             TlvKind
	AreaAddresses    [][]byte
	ISNeighbors      []ISNeighbor // #2 or #22, per Kind
	IPReach          []IPReach    // #128 or #135, per Kind
	Hostname         string
	RouterCapability RouterCapability
}

// IsIsData is the IS-IS-specific facet of a Router or Network node.
type IsIsData struct {
	LspID          LspId
	IsLevel        IsLevel
	Holdtime       int
	SequenceNumber uint32
	NetAddress     string // "49.<area>.<system id>.00", empty if unknown
	Tlvs           []Tlv
}

// FindExtendedISReachability returns the #22 TLV's neighbor list, or nil
// if the LSP carries none.
func (d *IsIsData) FindExtendedISReachability() []ISNeighbor {
	for _, t := range d.Tlvs {
		if t.Kind == TlvExtendedISReachability {
			return t.ISNeighbors
		}
	}
	return nil
}

// FindExtendedIPReachability returns the #135 TLV's prefix list, or nil
// if the LSP carries none.
func (d *IsIsData) FindExtendedIPReachability() []IPReach {
	for _, t := range d.Tlvs {
		if t.Kind == TlvExtendedIPReachability {
			return t.IPReach
		}
	}
	return nil
}

// Hostname returns the #137 TLV's value, or "" if absent.
func (d *IsIsData) Hostname() string {
	for _, t := range d.Tlvs {
		if t.Kind == TlvHostname {
			return t.Hostname
		}
	}
	return ""
}
