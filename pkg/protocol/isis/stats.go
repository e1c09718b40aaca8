package isis

import (
	"encoding/json"
	"net/netip"
	"sort"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
)

type linkStats struct {
	Ifindex int         `json:"ifindex"`
	Stats64 *stats64    `json:"stats64"`
}

type stats64 struct {
	Rx *rxtxCounters `json:"rx"`
	Tx *rxtxCounters `json:"tx"`
}

type rxtxCounters struct {
	Bytes   uint64 `json:"bytes"`
	Packets uint64 `json:"packets"`
}

// ParseLinkStats decodes `ip -j -s link show` into a per-ifindex byte and
// packet counter map.
func ParseLinkStats(data []byte) (map[int]model.InterfaceStats, error) {
	var links []linkStats
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, errs.NewMalformed("isis: decode link stats json: %v", err)
	}
	out := map[int]model.InterfaceStats{}
	for _, l := range links {
		var s model.InterfaceStats
		if l.Stats64 != nil {
			if l.Stats64.Rx != nil {
				s.RxBytes = l.Stats64.Rx.Bytes
				s.RxPackets = l.Stats64.Rx.Packets
			}
			if l.Stats64.Tx != nil {
				s.TxBytes = l.Stats64.Tx.Bytes
				s.TxPackets = l.Stats64.Tx.Packets
			}
		}
		out[l.Ifindex] = s
	}
	return out, nil
}

type vtyshInterface struct {
	Index       int            `json:"index"`
	Type        string          `json:"type"`
	IPAddresses []vtyshIPAddr   `json:"ipAddresses"`
}

type vtyshIPAddr struct {
	Address   string `json:"address"`
	Secondary bool   `json:"secondary"`
}

// ParseInterfaceAddresses decodes `show int json`'s per-interface map
// into a per-ifindex primary IP address, with "Loopback"-type interfaces
// forced to 127.0.0.1 per the original acquisition's special-case.
func ParseInterfaceAddresses(data []byte) (map[int]netip.Addr, error) {
	var raw map[string]vtyshInterface
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.NewMalformed("isis: decode show-int json: %v", err)
	}

	out := map[int]netip.Addr{}
	for _, iface := range raw {
		if iface.Type == "Loopback" {
			out[iface.Index] = netip.MustParseAddr("127.0.0.1")
			continue
		}
		for _, a := range iface.IPAddresses {
			if a.Secondary {
				continue
			}
			addr, err := parseAddrWithoutMask(a.Address)
			if err != nil {
				continue
			}
			out[iface.Index] = addr
			break
		}
	}
	return out, nil
}

func parseAddrWithoutMask(s string) (netip.Addr, error) {
	prefix, err := netip.ParsePrefix(s)
	if err == nil {
		return prefix.Addr(), nil
	}
	return netip.ParseAddr(s)
}

// BuildInterfaceStats joins per-ifindex link counters with per-ifindex
// primary addresses into the final InterfaceStats list: `ip -j -s link
// show` joined against `show int json`'s per-ifindex primary IP. An
// ifindex present in the address map but absent from the stats map is
// skipped — a counters-less interface contributes nothing useful.
func BuildInterfaceStats(linkStatsByIndex map[int]model.InterfaceStats, addrByIndex map[int]netip.Addr) []model.InterfaceStats {
	indexes := make([]int, 0, len(addrByIndex))
	for ifindex := range addrByIndex {
		indexes = append(indexes, ifindex)
	}
	sort.Ints(indexes)

	var out []model.InterfaceStats
	for _, ifindex := range indexes {
		s, ok := linkStatsByIndex[ifindex]
		if !ok {
			continue
		}
		s.IPAddress = addrByIndex[ifindex]
		out = append(out, s)
	}
	return out
}
