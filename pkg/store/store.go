// Package store holds the TopologyStore: the single mutable aggregate at
// rest, keyed by SourceId, that every poll writes into and every merged
// view reads from.
package store

import (
	"net/netip"
	"sort"
	"sync"
	"time"

	"github.com/gaissmai/bart"
	"github.com/google/uuid"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
	"github.com/netgraph-io/netgraph/pkg/util"
)

// TopologyStore maps SourceId to SourceState, guarded by mu so concurrent
// polls (writers) and merged-view queries (readers) never interleave on
// the same source.
type TopologyStore struct {
	mu      sync.RWMutex
	sources map[model.SourceId]*model.SourceState
}

// New returns an empty TopologyStore.
func New() *TopologyStore {
	return &TopologyStore{sources: make(map[model.SourceId]*model.SourceState)}
}

// ReplacePartition annotates every node with src, replaces src's
// partition, sets health to Connected, and bumps all three timestamps.
func (s *TopologyStore) ReplacePartition(src model.SourceId, nodes []model.Node, ts time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sources[src]
	if !ok {
		state = &model.SourceState{}
		s.sources[src] = state
	}
	state.Partition = model.NewPartition(src, nodes)
	state.Health = model.HealthConnected
	state.LastSnapshot = ts
	state.LastConnected = ts
	state.LastStatusChange = ts
}

// MarkLost flips src's health to Lost and bumps last_status_change,
// leaving last_snapshot/last_connected intact. If src is unknown, an
// empty partition is inserted in Lost state.
func (s *TopologyStore) MarkLost(src model.SourceId, ts time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sources[src]
	if !ok {
		state = &model.SourceState{Partition: model.Partition{Nodes: map[uuid.UUID]model.Node{}}}
		s.sources[src] = state
	}
	state.Health = model.HealthLost
	state.LastStatusChange = ts
}

// RestoreSource installs state verbatim under src, without touching
// timestamps the way ReplacePartition/MarkLost do. It exists for
// pkg/persist's snapshot-load path — the persisted document already
// carries the timestamps and health that were true when it was saved,
// and a restore must reproduce them exactly for the round-trip
// property to hold.
func (s *TopologyStore) RestoreSource(src model.SourceId, state model.SourceState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stateCopy := state
	s.sources[src] = &stateCopy
}

// RemovePartition drops src entirely. Fails with errs.StoreError if src
// isn't present.
func (s *TopologyStore) RemovePartition(src model.SourceId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sources[src]; !ok {
		return &errs.StoreError{Kind: errs.SourceNotFound}
	}
	delete(s.sources, src)
	return nil
}

// SourcesIter returns every known SourceId, sorted by display string for
// deterministic iteration.
func (s *TopologyStore) SourcesIter() []model.SourceId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedSourceIDsLocked()
}

func (s *TopologyStore) sortedSourceIDsLocked() []model.SourceId {
	ids := make([]model.SourceId, 0, len(s.sources))
	for id := range s.sources {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// GetSourceState returns a copy of src's current state, or ok == false if
// src isn't known to the store.
func (s *TopologyStore) GetSourceState(src model.SourceId) (model.SourceState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sources[src]
	if !ok {
		return model.SourceState{}, false
	}
	return *state, true
}

// BuildMergedViewWith groups every eligible source's nodes by identity
// (RouterId for routers, prefix for networks) and federates each group:
// cfg.Federator merges accepted groups, everything else falls
// back to the first facet in iteration order. The whole pass runs under
// a single read lock so it never interleaves with a ReplacePartition or
// MarkLost on any source.
func (s *TopologyStore) BuildMergedViewWith(cfg model.MergeConfig) ([]model.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	routerGroups := map[model.RouterId][]model.Node{}
	var routerOrder []model.RouterId
	networkGroups := map[netip.Prefix][]model.Node{}
	var networkOrder []netip.Prefix

	for _, id := range s.sortedSourceIDsLocked() {
		if cfg.IsDisabled(id) {
			continue
		}
		state := s.sources[id]
		if cfg.ConnectedOnly && state.Health != model.HealthConnected {
			continue
		}

		nodes := make([]model.Node, 0, len(state.Partition.Nodes))
		for _, n := range state.Partition.Nodes {
			nodes = append(nodes, n)
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID.String() < nodes[j].ID.String() })

		for _, n := range nodes {
			switch n.Info.Kind {
			case model.NodeKindRouter:
				rid := n.Info.Router.ID
				if _, seen := routerGroups[rid]; !seen {
					routerOrder = append(routerOrder, rid)
				}
				routerGroups[rid] = append(routerGroups[rid], n)
			case model.NodeKindNetwork:
				prefix := n.Info.Network.Prefix
				if _, seen := networkGroups[prefix]; !seen {
					networkOrder = append(networkOrder, prefix)
				}
				networkGroups[prefix] = append(networkGroups[prefix], n)
			}
		}
	}

	out := make([]model.Node, 0, len(routerOrder)+len(networkOrder))
	for _, rid := range routerOrder {
		out = append(out, mergeRouterGroup(cfg.Federator, routerGroups[rid]))
	}
	for _, prefix := range networkOrder {
		out = append(out, mergeNetworkGroup(cfg.Federator, networkGroups[prefix]))
	}
	return out, nil
}

func mergeRouterGroup(fed model.ProtocolFederator, facets []model.Node) model.Node {
	if fed != nil {
		if err := fed.CanMergeRouterFacets(facets); err == nil {
			return fed.MergeRouters(facets)
		} else {
			util.WithField("reason", err.Error()).Debug("federation: router group rejected, using fallback representative")
		}
	}
	return facets[0].Clone()
}

func mergeNetworkGroup(fed model.ProtocolFederator, facets []model.Node) model.Node {
	if fed != nil {
		if err := fed.CanMergeNetworkFacets(facets); err == nil {
			return fed.MergeNetworks(facets)
		} else {
			util.WithField("reason", err.Error()).Debug("federation: network group rejected, using fallback representative")
		}
	}
	return facets[0].Clone()
}

// LookupPrefix answers "which merged Network node covers ip", backed by a
// bart.Table built fresh from the merged view's Network nodes — rebuilt
// on every call rather than kept incrementally, consistent with
// partitions being replaced wholesale rather than updated in place.
func (s *TopologyStore) LookupPrefix(cfg model.MergeConfig, ip netip.Addr) (model.Node, bool, error) {
	nodes, err := s.BuildMergedViewWith(cfg)
	if err != nil {
		return model.Node{}, false, err
	}

	var tbl bart.Table[model.Node]
	for _, n := range nodes {
		if n.Info.Kind == model.NodeKindNetwork {
			tbl.Insert(n.Info.Network.Prefix, n)
		}
	}
	node, ok := tbl.Lookup(ip)
	return node, ok, nil
}
