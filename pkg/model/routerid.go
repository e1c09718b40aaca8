// Package model holds the protocol-agnostic graph: RouterId, Node,
// Router, Network, their protocol-specific payloads, and the
// per-source aggregates (Partition, SourceState, MergeConfig,
// InterfaceStats) that sit between acquisition and the merged view.
package model

import (
	"encoding/hex"
	"fmt"
	"net/netip"

	"github.com/google/uuid"
)

// uuidNamespace is the fixed namespace every deterministic v5 UUID in
// this package is generated under. RouterIds and network prefixes share
// it; they cannot collide because a RouterId's encoding starts with its
// kind tag byte (0-3), which no textual prefix starts with.
var uuidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://netgraph.io/topology"))

// UUIDv5 computes the deterministic v5 UUID for an arbitrary textual
// identity (used for Network node ids: uuid_v5("<prefix>")).
func UUIDv5(s string) uuid.UUID {
	return uuid.NewSHA1(uuidNamespace, []byte(s))
}

// RouterKind discriminates the four ways a router can be identified.
type RouterKind int

const (
	RouterKindIPv4 RouterKind = iota
	RouterKindIPv6
	RouterKindIsIs
	RouterKindOpaque
)

func (k RouterKind) String() string {
	switch k {
	case RouterKindIPv4:
		return "ipv4"
	case RouterKindIPv6:
		return "ipv6"
	case RouterKindIsIs:
		return "isis"
	case RouterKindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// SystemID is an IS-IS 6-byte System ID.
type SystemID [6]byte

func (s SystemID) String() string {
	h := hex.EncodeToString(s[:])
	return fmt.Sprintf("%s.%s.%s", h[0:4], h[4:8], h[8:12])
}

// RouterId is the discriminated identifier for a router across
// protocols, and also serves as SourceId. Two RouterIds are equal iff
// their Kind and canonical bytes are equal.
type RouterId struct {
	Kind   RouterKind
	Addr   netip.Addr // valid for RouterKindIPv4 / RouterKindIPv6
	SysID  SystemID   // valid for RouterKindIsIs
	Opaque string      // valid for RouterKindOpaque
}

// SourceId is RouterId wearing a different hat — it's the same
// primary-identity type used to key a Partition in the store.
type SourceId = RouterId

func NewRouterIDv4(addr netip.Addr) (RouterId, error) {
	if !addr.Is4() {
		return RouterId{}, fmt.Errorf("NewRouterIDv4: %s is not an IPv4 address", addr)
	}
	return RouterId{Kind: RouterKindIPv4, Addr: addr}, nil
}

func NewRouterIDv6(addr netip.Addr) (RouterId, error) {
	if !addr.Is6() {
		return RouterId{}, fmt.Errorf("NewRouterIDv6: %s is not an IPv6 address", addr)
	}
	return RouterId{Kind: RouterKindIPv6, Addr: addr}, nil
}

func NewRouterIDIsIs(sysID SystemID) RouterId {
	return RouterId{Kind: RouterKindIsIs, SysID: sysID}
}

func NewRouterIDOpaque(s string) RouterId {
	return RouterId{Kind: RouterKindOpaque, Opaque: s}
}

// Bytes is the canonical byte encoding used for both equality and v5
// UUID generation: a one-byte kind tag followed by the variant's bytes.
func (r RouterId) Bytes() []byte {
	switch r.Kind {
	case RouterKindIPv4, RouterKindIPv6:
		b := r.Addr.As16()
		out := make([]byte, 0, 17)
		out = append(out, byte(r.Kind))
		return append(out, b[:]...)
	case RouterKindIsIs:
		out := make([]byte, 0, 7)
		out = append(out, byte(r.Kind))
		return append(out, r.SysID[:]...)
	default: // RouterKindOpaque
		out := make([]byte, 0, len(r.Opaque)+1)
		out = append(out, byte(r.Kind))
		return append(out, []byte(r.Opaque)...)
	}
}

// Equal reports whether two RouterIds share the same variant and bytes.
func (r RouterId) Equal(other RouterId) bool {
	if r.Kind != other.Kind {
		return false
	}
	rb, ob := r.Bytes(), other.Bytes()
	if len(rb) != len(ob) {
		return false
	}
	for i := range rb {
		if rb[i] != ob[i] {
			return false
		}
	}
	return true
}

// ToUUIDv5 computes the deterministic v5 UUID over the RouterId's
// canonical byte encoding, inside the package-fixed namespace.
func (r RouterId) ToUUIDv5() uuid.UUID {
	return uuid.NewSHA1(uuidNamespace, r.Bytes())
}

func (r RouterId) String() string {
	switch r.Kind {
	case RouterKindIPv4, RouterKindIPv6:
		return r.Addr.String()
	case RouterKindIsIs:
		return r.SysID.String()
	default:
		return r.Opaque
	}
}
