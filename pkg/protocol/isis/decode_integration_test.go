//go:build integration

package isis_test

import (
	"testing"

	"github.com/netgraph-io/netgraph/internal/testutil"
	"github.com/netgraph-io/netgraph/pkg/protocol/isis"
	"github.com/netgraph-io/netgraph/pkg/transport/sshcli"
)

func TestFetchAndLiftLSPDB(t *testing.T) {
	testutil.SkipIfNoLabSSH(t)

	c := sshcli.NewClient(testutil.LabSSHAddr(), "admin", 22, sshcli.WithPassword("admin"))
	ctx := testutil.Context(t)
	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Close()

	hostnameOutput, err := c.ExecuteCommand(ctx, "vtysh -c 'show isis hostname'")
	if err != nil {
		t.Fatalf("fetch hostname map: %v", err)
	}
	hostnames := isis.BuildHostnameMap(hostnameOutput)
	if hostnames.Len() == 0 {
		t.Fatal("expected at least one hostname entry from the lab device")
	}

	lspdbOutput, err := c.ExecuteCommand(ctx, "vtysh -c 'show isis database detail json'")
	if err != nil {
		t.Fatalf("fetch lspdb: %v", err)
	}
	db, err := isis.DecodeLSPDB([]byte(lspdbOutput))
	if err != nil {
		t.Fatalf("DecodeLSPDB: %v", err)
	}
	records, err := isis.ExtractLSPs(db, hostnames)
	if err != nil {
		t.Fatalf("ExtractLSPs: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected at least one decoded LSP from the lab device")
	}

	for _, rec := range records {
		if _, err := isis.Lift(rec); err != nil {
			t.Errorf("Lift(%s): %v", rec.Data.LspID, err)
		}
	}
}
