// Package source implements the SnapshotSource facade: one object
// per (protocol, source) that yields a source id, its lifted and
// consolidated nodes, and its interface counters, atomically enough
// for the caller to hand the result straight to a TopologyStore.
package source

import (
	"context"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
)

// SnapshotSource polls one router and produces the three pieces of a
// snapshot. Implementations own their transport (an SNMP session, an
// SSH session) and are not safe for concurrent use — the caller is
// expected to serialize calls per source.
type SnapshotSource interface {
	FetchSourceID(ctx context.Context) (model.SourceId, error)
	FetchNodes(ctx context.Context) ([]model.Node, error)
	FetchStats(ctx context.Context) ([]model.InterfaceStats, error)
}

// FetchSnapshot implements the default fetch_snapshot ordering: source
// id first, then nodes, then stats. idKnown reports
// whether FetchSourceID succeeded — the caller needs that id to
// mark_lost the source even when a later step fails, but must discard
// the poll entirely if the id itself couldn't be obtained.
func FetchSnapshot(ctx context.Context, s SnapshotSource) (id model.SourceId, idKnown bool, nodes []model.Node, stats []model.InterfaceStats, err error) {
	id, err = s.FetchSourceID(ctx)
	if err != nil {
		return model.SourceId{}, false, nil, nil, errs.Lift(err)
	}

	nodes, err = s.FetchNodes(ctx)
	if err != nil {
		return id, true, nil, nil, errs.Lift(err)
	}

	stats, err = s.FetchStats(ctx)
	if err != nil {
		return id, true, nil, nil, errs.Lift(err)
	}

	return id, true, nodes, stats, nil
}
