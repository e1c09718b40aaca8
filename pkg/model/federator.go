package model

// ProtocolFederator is the capability a MergeConfig plugs in to decide
// whether a group of same-identity facets (same RouterId, or same
// Network prefix) may be merged into one node, and how. It is data
// selected per MergeConfig, not code inherited from the node — see
// pkg/federation for the default OSPF implementation.
type ProtocolFederator interface {
	CanMergeRouterFacets(facets []Node) error
	CanMergeNetworkFacets(facets []Node) error
	MergeRouters(facets []Node) Node
	MergeNetworks(facets []Node) Node
}
