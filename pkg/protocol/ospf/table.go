package ospf

import (
	"strconv"
	"strings"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/transport/snmp"
)

const (
	LsdbTablePrefix   = "1.3.6.1.2.1.14.4.1"
	LsdbAreaColumn    = "1.3.6.1.2.1.14.4.1.1"
	LsdbLSIDColumn    = "1.3.6.1.2.1.14.4.1.3"
	LsdbRouterColumn  = "1.3.6.1.2.1.14.4.1.4"
	LsdbAdvertColumn  = "1.3.6.1.2.1.14.4.1.8"
	RouterIDScalarOid = "1.3.6.1.2.1.14.1.1.0"
)

// OspfRawRow is one grouped ospfLsdbTable row: the columns the decoder
// actually needs, keyed by the row's instance suffix (area, type,
// link-state-id, router-id — the table's full index).
type OspfRawRow struct {
	RowKey            string
	AreaID            snmp.LinkStateValue
	LinkStateID       snmp.LinkStateValue
	AdvertisingRouter snmp.LinkStateValue
	Advertisement     snmp.LinkStateValue
}

// GroupIntoRows strips the LsdbTablePrefix from each varbind OID, uses
// the first remaining sub-OID component as the column index, and
// joins the rest of the sub-OIDs (the row instance) as the grouping
// key — mirroring SnmpTableRow::group_into_rows's prefix-stripping
// rule rather than gosnmp's own walk helpers, since the four columns
// here are fetched together via one GetBulk and must stay joined by
// row instance.
func GroupIntoRows(rows []snmp.Row) ([]OspfRawRow, error) {
	grouped := make(map[string]*OspfRawRow)
	var order []string

	for _, r := range rows {
		if !strings.HasPrefix(r.Oid, LsdbTablePrefix+".") {
			continue
		}
		rest := strings.TrimPrefix(r.Oid, LsdbTablePrefix+".")
		parts := strings.SplitN(rest, ".", 2)
		if len(parts) != 2 {
			return nil, errs.NewMalformed("ospf table row: oid %s has no instance suffix", r.Oid)
		}
		column, instance := parts[0], parts[1]

		entry, ok := grouped[instance]
		if !ok {
			entry = &OspfRawRow{RowKey: instance}
			grouped[instance] = entry
			order = append(order, instance)
		}

		switch column {
		case "1":
			entry.AreaID = r.Value
		case "3":
			entry.LinkStateID = r.Value
		case "4":
			entry.AdvertisingRouter = r.Value
		case "8":
			entry.Advertisement = r.Value
		}
	}

	out := make([]OspfRawRow, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out, nil
}

// parseColumnIndex is exercised by tests that need to assert the
// instance-suffix split independent of GroupIntoRows' map iteration.
func parseColumnIndex(oid string) (column int, instance string, err error) {
	rest := strings.TrimPrefix(oid, LsdbTablePrefix+".")
	parts := strings.SplitN(rest, ".", 2)
	if len(parts) != 2 {
		return 0, "", errs.NewMalformed("oid %s has no instance suffix", oid)
	}
	column, convErr := strconv.Atoi(parts[0])
	if convErr != nil {
		return 0, "", errs.NewMalformed("oid %s: non-numeric column %s", oid, parts[0])
	}
	return column, parts[1], nil
}
