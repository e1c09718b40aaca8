package ospf

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
	"github.com/netgraph-io/netgraph/pkg/transport/snmp"
)

const (
	IfOctetsInColumn  = "1.3.6.1.2.1.2.2.1.10"
	IfOctetsOutColumn = "1.3.6.1.2.1.2.2.1.16"
	IfPacketsInColumn = "1.3.6.1.2.1.2.2.1.11"
	IfPacketsOutColumn = "1.3.6.1.2.1.2.2.1.17"
	IpAddrIfIndexColumn = "1.3.6.1.2.1.4.20.1.2"
)

// BuildInterfaceStats joins ifTable counters to the IP addresses that
// ipAddrTable maps onto the same interface index: interface counters
// come from ifTable columns 10/11/16/17, joined to IP addresses via
// ipAddrTable column ...4.20.1.2 (interface index keyed by IP).
func BuildInterfaceStats(ifRows, ipAddrRows []snmp.Row) ([]model.InterfaceStats, error) {
	byIndex := map[string]*model.InterfaceStats{}

	for _, r := range ifRows {
		column, index, err := splitLastComponent(r.Oid)
		if err != nil {
			continue
		}
		entry, ok := byIndex[index]
		if !ok {
			entry = &model.InterfaceStats{}
			byIndex[index] = entry
		}
		switch column {
		case IfOctetsInColumn:
			if r.Value.Kind == snmp.KindCounter32 {
				entry.RxBytes = uint64(r.Value.Counter32)
			}
		case IfOctetsOutColumn:
			if r.Value.Kind == snmp.KindCounter32 {
				entry.TxBytes = uint64(r.Value.Counter32)
			}
		case IfPacketsInColumn:
			if r.Value.Kind == snmp.KindCounter32 {
				entry.RxPackets = uint64(r.Value.Counter32)
			}
		case IfPacketsOutColumn:
			if r.Value.Kind == snmp.KindCounter32 {
				entry.TxPackets = uint64(r.Value.Counter32)
			}
		}
	}

	var out []model.InterfaceStats
	for _, r := range ipAddrRows {
		if !strings.HasPrefix(r.Oid, IpAddrIfIndexColumn+".") {
			continue
		}
		ipStr := strings.TrimPrefix(r.Oid, IpAddrIfIndexColumn+".")
		addr, err := netip.ParseAddr(ipStr)
		if err != nil {
			return nil, errs.NewMalformed("ipAddrTable: bad ip in oid %s", r.Oid)
		}
		if r.Value.Kind != snmp.KindInteger {
			continue
		}
		index := strconv.FormatInt(r.Value.Integer, 10)
		stats, ok := byIndex[index]
		if !ok {
			continue
		}
		entry := *stats
		entry.IPAddress = addr
		out = append(out, entry)
	}
	return out, nil
}

func splitLastComponent(oid string) (prefix string, last string, err error) {
	idx := strings.LastIndex(oid, ".")
	if idx < 0 {
		return "", "", errs.NewMalformed("oid %s has no components", oid)
	}
	return oid[:idx], oid[idx+1:], nil
}
