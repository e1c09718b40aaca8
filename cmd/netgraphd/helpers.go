package main

import (
	"context"
	"fmt"
	"time"

	"github.com/netgraph-io/netgraph/pkg/audit"
	"github.com/netgraph-io/netgraph/pkg/inventory"
	"github.com/netgraph-io/netgraph/pkg/model"
	"github.com/netgraph-io/netgraph/pkg/source"
	"github.com/netgraph-io/netgraph/pkg/store"
	"github.com/netgraph-io/netgraph/pkg/transport/sshcli"
	"github.com/netgraph-io/netgraph/pkg/transport/snmp"
	"github.com/netgraph-io/netgraph/pkg/util"
)

// namedSource pairs an inventory entry's display name with the
// SnapshotSource it was built into, so a failed poll can be logged
// against a human-readable name even before the source id is known.
type namedSource struct {
	name string
	impl source.SnapshotSource
	ssh  *sshcli.Client // non-nil for IS-IS sources, needs Connect/Close
}

// buildSources turns every inventory entry into a live SnapshotSource.
// IS-IS sources connect their SSH session eagerly, since a source is
// expected to already be connected before its first Fetch* call.
func buildSources(ctx context.Context, inv *inventory.Inventory) ([]namedSource, error) {
	out := make([]namedSource, 0, len(inv.Sources))
	for _, s := range inv.Sources {
		switch s.Protocol {
		case inventory.ProtocolOspf:
			port := s.Port
			if port == 0 {
				port = 161
			}
			client := snmp.NewClient(s.Address, uint16(port), s.Community)
			if s.Version == "v1" {
				client.WithVersion1()
			}
			out = append(out, namedSource{name: s.Name, impl: source.NewOspfSource(client)})

		case inventory.ProtocolIsIs:
			port := s.Port
			if port == 0 {
				port = 22
			}
			client := sshcli.NewClient(s.Address, s.Username, port, sshcli.WithPassword(s.Password))
			if err := client.Connect(ctx); err != nil {
				util.WithFields(map[string]interface{}{"source": s.Name, "error": err}).Warn("isis: connect failed")
				continue
			}
			out = append(out, namedSource{name: s.Name, impl: source.NewIsIsSource(client), ssh: client})

		default:
			return nil, fmt.Errorf("unknown protocol %q for source %q", s.Protocol, s.Name)
		}
	}
	return out, nil
}

// pollRound polls every source once and applies the result to st,
// following the partial-failure rule: a known source id gets either a
// ReplacePartition or a MarkLost, and a source whose id is unknown
// (FetchSourceID itself failing) is logged and audited but leaves the
// store untouched. If ctx is cancelled mid-round, the round stops at
// the failed poll without touching the store for it or later sources.
func pollRound(ctx context.Context, st *store.TopologyStore, sources []namedSource) {
	now := time.Now()
	for _, ns := range sources {
		start := time.Now()
		id, idKnown, nodes, stats, err := source.FetchSnapshot(ctx, ns.impl)
		event := audit.NewEvent(displaySourceID(id, idKnown, ns.name), audit.EventTypePoll).WithDuration(time.Since(start))

		if err != nil {
			if ctx.Err() != nil {
				// Cancelled polls never touch the store.
				util.WithField("source", ns.name).Debug("poll cancelled")
				return
			}
			util.WithFields(map[string]interface{}{"source": ns.name, "error": err}).Warn("poll failed")
			if idKnown {
				st.MarkLost(id, now)
			}
			audit.Log(event.WithError(err))
			continue
		}

		st.ReplacePartition(id, nodes, now)
		audit.Log(event.WithSuccess().WithNodeCount(len(nodes)))
		util.WithFields(map[string]interface{}{"source": ns.name, "nodes": len(nodes), "interfaces": len(stats)}).Info("poll succeeded")
	}
}

func displaySourceID(id model.SourceId, known bool, fallback string) string {
	if known {
		return id.String()
	}
	return fallback
}

func closeSources(sources []namedSource) {
	for _, ns := range sources {
		if ns.ssh != nil {
			if err := ns.ssh.Close(); err != nil {
				util.WithFields(map[string]interface{}{"source": ns.name, "error": err}).Debug("closing ssh session")
			}
		}
	}
}
