package source

import (
	"context"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
	"github.com/netgraph-io/netgraph/pkg/protocol/ospf"
	"github.com/netgraph-io/netgraph/pkg/transport/snmp"
)

// lsdbBulkRepetitions bounds the single GetBulk call used to fetch the
// whole ospfLsdbTable in one page, per the original acquisition's
// assumption that a router's LSDB fits one bulk response.
const lsdbBulkRepetitions = 50

// OspfSource polls one OSPF router's LSDB and interface tables over
// SNMP and lifts/consolidates the result into the graph model.
type OspfSource struct {
	client *snmp.Client
}

// NewOspfSource wraps an already-configured SNMP client. The client
// lazily connects on first query, so no separate dial step is needed.
func NewOspfSource(client *snmp.Client) *OspfSource {
	return &OspfSource{client: client}
}

// FetchSourceID reads the ospfRouterId scalar.
func (s *OspfSource) FetchSourceID(ctx context.Context) (model.SourceId, error) {
	rows, err := s.client.Query().Get().Oid(ospf.RouterIDScalarOid).Execute()
	if err != nil {
		return model.SourceId{}, err
	}
	if len(rows) != 1 {
		return model.SourceId{}, errs.NewAcquisitionInvalid("ospfRouterId: expected exactly one row, got %d", len(rows))
	}
	return ospf.DecodeSourceID(rows[0].Value)
}

// FetchNodes fetches the ospfLsdbTable with a single GetBulk page,
// decodes and lifts every row, and
// runs the intra-source consolidation passes before returning.
func (s *OspfSource) FetchNodes(ctx context.Context) ([]model.Node, error) {
	rows, err := s.client.Query().
		GetBulk(0, lsdbBulkRepetitions).
		Oids(ospf.LsdbAreaColumn, ospf.LsdbLSIDColumn, ospf.LsdbRouterColumn, ospf.LsdbAdvertColumn).
		Execute()
	if err != nil {
		return nil, err
	}

	rawRows, err := ospf.GroupIntoRows(rows)
	if err != nil {
		return nil, err
	}

	var nodes []model.Node
	for _, raw := range rawRows {
		entry, err := ospf.DecodeRow(raw)
		if err != nil {
			return nil, err
		}
		node, err := ospf.Lift(entry)
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, *node)
		}
	}

	return ospf.Consolidate(nodes), nil
}

// FetchStats joins ifTable counters with ipAddrTable addresses.
func (s *OspfSource) FetchStats(ctx context.Context) ([]model.InterfaceStats, error) {
	var ifRows []snmp.Row
	for _, oid := range []string{
		ospf.IfOctetsInColumn,
		ospf.IfOctetsOutColumn,
		ospf.IfPacketsInColumn,
		ospf.IfPacketsOutColumn,
	} {
		rows, err := s.client.Query().Walk().Oid(oid).Execute()
		if err != nil {
			return nil, err
		}
		ifRows = append(ifRows, rows...)
	}

	ipAddrRows, err := s.client.Query().Walk().Oid(ospf.IpAddrIfIndexColumn).Execute()
	if err != nil {
		return nil, err
	}

	return ospf.BuildInterfaceStats(ifRows, ipAddrRows)
}
