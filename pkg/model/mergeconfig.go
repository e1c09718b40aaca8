package model

// MergeConfig controls how TopologyStore.BuildMergedViewWith assembles
// the federated view: which sources to read from, and which federator
// (if any) may merge same-identity facets together.
type MergeConfig struct {
	Federator       ProtocolFederator // nil means always fall back to the first facet
	DisabledSources map[SourceId]struct{}
	ConnectedOnly   bool
}

// IsDisabled reports whether src is excluded from the merged view.
func (c MergeConfig) IsDisabled(src SourceId) bool {
	if c.DisabledSources == nil {
		return false
	}
	_, ok := c.DisabledSources[src]
	return ok
}
