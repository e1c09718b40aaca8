//go:build integration

package snmp_test

import (
	"testing"

	"github.com/netgraph-io/netgraph/internal/testutil"
	"github.com/netgraph-io/netgraph/pkg/transport/snmp"
)

func TestConnectAndGet(t *testing.T) {
	testutil.SkipIfNoLabSNMP(t)

	c := snmp.NewClient(testutil.LabSNMPAddr(), 161, "public")
	rows, err := c.Query().Get().Oid("1.3.6.1.2.1.1.1.0").Execute()
	if err != nil {
		t.Fatalf("Get sysDescr failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestGetBulkOspfLsdb(t *testing.T) {
	testutil.SkipIfNoLabSNMP(t)

	c := snmp.NewClient(testutil.LabSNMPAddr(), 161, "public")
	rows, err := c.Query().GetBulk(0, 25).Oid("1.3.6.1.2.1.14.4.1.8").Execute()
	if err != nil {
		t.Fatalf("GetBulk ospfLsdbAdvertisement failed: %v", err)
	}
	if len(rows) == 0 {
		t.Error("expected at least one LSDB row from the lab OSPF device")
	}
}
