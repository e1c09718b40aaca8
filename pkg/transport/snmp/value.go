package snmp

import (
	"fmt"
	"net/netip"

	"github.com/gosnmp/gosnmp"
)

// LinkStateValue is a closed sum type over the SNMP varbind payloads
// the OSPF MIB actually produces. gosnmp.SnmpPDU.Value is `any` over a
// wider set of ASN.1 types; narrowing it here means every downstream
// consumer matches on a fixed, known set instead of a type switch over
// interface{}.
type LinkStateValueKind int

const (
	KindInteger LinkStateValueKind = iota
	KindIPAddress
	KindOctetString
	KindCounter32
	KindTimeticks
	KindBoolean
	KindUnsigned32
	KindUnknown
)

type LinkStateValue struct {
	Kind       LinkStateValueKind
	Integer    int64
	IPAddress  netip.Addr
	OctetStr   []byte
	Counter32  uint32
	Timeticks  uint32
	Boolean    bool
	Unsigned32 uint32
}

// FromPDU narrows a gosnmp varbind into a LinkStateValue, defaulting to
// KindUnknown for anything the OSPF MIB never emits (Counter64, OID,
// NoSuchObject, etc).
func FromPDU(pdu gosnmp.SnmpPDU) LinkStateValue {
	switch pdu.Type {
	case gosnmp.Integer:
		if v, ok := pdu.Value.(int); ok {
			return LinkStateValue{Kind: KindInteger, Integer: int64(v)}
		}
		return LinkStateValue{Kind: KindUnknown}
	case gosnmp.IPAddress:
		s, ok := pdu.Value.(string)
		if !ok {
			return LinkStateValue{Kind: KindUnknown}
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return LinkStateValue{Kind: KindUnknown}
		}
		return LinkStateValue{Kind: KindIPAddress, IPAddress: addr}
	case gosnmp.OctetString:
		switch v := pdu.Value.(type) {
		case []byte:
			return LinkStateValue{Kind: KindOctetString, OctetStr: v}
		case string:
			return LinkStateValue{Kind: KindOctetString, OctetStr: []byte(v)}
		default:
			return LinkStateValue{Kind: KindUnknown}
		}
	case gosnmp.Counter32:
		if v, ok := pdu.Value.(uint); ok {
			return LinkStateValue{Kind: KindCounter32, Counter32: uint32(v)}
		}
		return LinkStateValue{Kind: KindUnknown}
	case gosnmp.TimeTicks:
		if v, ok := pdu.Value.(uint32); ok {
			return LinkStateValue{Kind: KindTimeticks, Timeticks: v}
		}
		return LinkStateValue{Kind: KindUnknown}
	case gosnmp.Boolean:
		if v, ok := pdu.Value.(bool); ok {
			return LinkStateValue{Kind: KindBoolean, Boolean: v}
		}
		return LinkStateValue{Kind: KindUnknown}
	case gosnmp.Uinteger32:
		if v, ok := pdu.Value.(uint32); ok {
			return LinkStateValue{Kind: KindUnsigned32, Unsigned32: v}
		}
		return LinkStateValue{Kind: KindUnknown}
	default:
		return LinkStateValue{Kind: KindUnknown}
	}
}

func (v LinkStateValue) String() string {
	switch v.Kind {
	case KindInteger:
		return fmt.Sprintf("%d", v.Integer)
	case KindIPAddress:
		return v.IPAddress.String()
	case KindOctetString:
		return fmt.Sprintf("% x", v.OctetStr)
	case KindCounter32:
		return fmt.Sprintf("%d", v.Counter32)
	case KindTimeticks:
		return fmt.Sprintf("%d", v.Timeticks)
	case KindBoolean:
		return fmt.Sprintf("%t", v.Boolean)
	case KindUnsigned32:
		return fmt.Sprintf("%d", v.Unsigned32)
	default:
		return "<unknown>"
	}
}
