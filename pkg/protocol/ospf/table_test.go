package ospf

import (
	"testing"

	"github.com/netgraph-io/netgraph/pkg/transport/snmp"
)

func TestGroupIntoRows_JoinsColumnsByInstance(t *testing.T) {
	rows := []snmp.Row{
		{Oid: LsdbAreaColumn + ".0.0.0.0.1.10.0.0.1.10.0.0.1", Value: snmp.LinkStateValue{Kind: snmp.KindIPAddress}},
		{Oid: LsdbLSIDColumn + ".0.0.0.0.1.10.0.0.1.10.0.0.1", Value: snmp.LinkStateValue{Kind: snmp.KindIPAddress}},
		{Oid: LsdbRouterColumn + ".0.0.0.0.1.10.0.0.1.10.0.0.1", Value: snmp.LinkStateValue{Kind: snmp.KindIPAddress}},
		{Oid: LsdbAdvertColumn + ".0.0.0.0.1.10.0.0.1.10.0.0.1", Value: snmp.LinkStateValue{Kind: snmp.KindOctetString}},
	}
	grouped, err := GroupIntoRows(rows)
	if err != nil {
		t.Fatalf("GroupIntoRows: %v", err)
	}
	if len(grouped) != 1 {
		t.Fatalf("expected all 4 columns to join into 1 row, got %d", len(grouped))
	}
	row := grouped[0]
	if row.AreaID.Kind != snmp.KindIPAddress || row.Advertisement.Kind != snmp.KindOctetString {
		t.Errorf("unexpected row: %+v", row)
	}
}

func TestGroupIntoRows_SeparatesDistinctInstances(t *testing.T) {
	rows := []snmp.Row{
		{Oid: LsdbAreaColumn + ".0.0.0.0.1.10.0.0.1.10.0.0.1", Value: snmp.LinkStateValue{Kind: snmp.KindIPAddress}},
		{Oid: LsdbAreaColumn + ".0.0.0.0.1.10.0.0.2.10.0.0.2", Value: snmp.LinkStateValue{Kind: snmp.KindIPAddress}},
	}
	grouped, err := GroupIntoRows(rows)
	if err != nil {
		t.Fatalf("GroupIntoRows: %v", err)
	}
	if len(grouped) != 2 {
		t.Fatalf("expected 2 distinct rows, got %d", len(grouped))
	}
}

func TestParseColumnIndex(t *testing.T) {
	col, instance, err := parseColumnIndex(LsdbAreaColumn + ".0.0.0.0.1.10.0.0.1.10.0.0.1")
	if err != nil {
		t.Fatalf("parseColumnIndex: %v", err)
	}
	if col != 1 {
		t.Errorf("expected column 1, got %d", col)
	}
	if instance == "" {
		t.Errorf("expected non-empty instance suffix")
	}
}
