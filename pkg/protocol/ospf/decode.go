package ospf

import (
	"net/netip"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
	"github.com/netgraph-io/netgraph/pkg/transport/snmp"
)

// LsdbEntry is a fully decoded ospfLsdbTable row: the table's own
// identity columns plus the parsed LSA the advertisement column held.
type LsdbEntry struct {
	AreaID            netip.Addr
	LinkStateID       netip.Addr
	AdvertisingRouter netip.Addr
	LSA               *model.LSA
}

// DecodeRow converts one grouped OspfRawRow into an LsdbEntry,
// rejecting any column whose SNMP type doesn't match what the
// ospfLsdbTable MIB promises.
func DecodeRow(row OspfRawRow) (*LsdbEntry, error) {
	area, err := ipAddressColumn(row.AreaID, "area-id")
	if err != nil {
		return nil, err
	}
	linkStateID, err := ipAddressColumn(row.LinkStateID, "link-state-id")
	if err != nil {
		return nil, err
	}
	router, err := ipAddressColumn(row.AdvertisingRouter, "advertising-router")
	if err != nil {
		return nil, err
	}
	if row.Advertisement.Kind != snmp.KindOctetString {
		return nil, errs.NewMalformed("advertisement: unexpected value %s", row.Advertisement.String())
	}

	lsa, err := ParseLSA(row.Advertisement.OctetStr)
	if err != nil {
		return nil, err
	}

	return &LsdbEntry{
		AreaID:            area,
		LinkStateID:       linkStateID,
		AdvertisingRouter: router,
		LSA:               lsa,
	}, nil
}

func ipAddressColumn(v snmp.LinkStateValue, name string) (netip.Addr, error) {
	if v.Kind != snmp.KindIPAddress {
		return netip.Addr{}, errs.NewMalformed("%s: unexpected value %s", name, v.String())
	}
	return v.IPAddress, nil
}

// DecodeSourceID reads the ospfRouterId scalar as the source's primary
// identity: source identity is the router's ospfRouterId.
func DecodeSourceID(v snmp.LinkStateValue) (model.RouterId, error) {
	addr, err := ipAddressColumn(v, "ospfRouterId")
	if err != nil {
		return model.RouterId{}, err
	}
	return model.NewRouterIDv4(addr)
}
