package source

import (
	"context"
	"fmt"

	"github.com/netgraph-io/netgraph/pkg/errs"
	"github.com/netgraph-io/netgraph/pkg/model"
	"github.com/netgraph-io/netgraph/pkg/protocol/isis"
	"github.com/netgraph-io/netgraph/pkg/transport/sshcli"
	"github.com/netgraph-io/netgraph/pkg/util"
)

// IsIsSource polls one IS-IS router over SSH/vtysh and lifts/
// consolidates the result into the graph model.
type IsIsSource struct {
	client *sshcli.Client
}

// NewIsIsSource wraps an already-connected SSH client — Connect must
// be called by the owner before any Fetch* method runs.
func NewIsIsSource(client *sshcli.Client) *IsIsSource {
	return &IsIsSource{client: client}
}

func (s *IsIsSource) fetchHostnames(ctx context.Context) (*isis.HostnameMap, error) {
	out, err := s.client.ExecuteCommand(ctx, "vtysh -c 'show isis hostname'")
	if err != nil {
		return nil, err
	}
	return isis.BuildHostnameMap(out), nil
}

// FetchSourceID resolves the local router's System ID from the
// hostname table entry marked '*'.
func (s *IsIsSource) FetchSourceID(ctx context.Context) (model.SourceId, error) {
	hostnames, err := s.fetchHostnames(ctx)
	if err != nil {
		return model.SourceId{}, err
	}
	local, ok := hostnames.LocalEntry()
	if !ok {
		return model.SourceId{}, errs.NewAcquisitionInvalid("isis: no hostname entry marked local ('*')")
	}
	return model.NewRouterIDIsIs(local.SystemID), nil
}

// FetchNodes retrieves the full LSPDB, lifts every LSP, and resolves
// pseudonode prefixes. Pseudonode prefix failures are logged and left
// with the placeholder prefix rather than aborting the fetch.
func (s *IsIsSource) FetchNodes(ctx context.Context) ([]model.Node, error) {
	hostnames, err := s.fetchHostnames(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.ExecuteCommand(ctx, "vtysh -c 'show isis database detail json'")
	if err != nil {
		return nil, err
	}

	db, err := isis.DecodeLSPDB([]byte(raw))
	if err != nil {
		return nil, err
	}

	records, err := isis.ExtractLSPs(db, hostnames)
	if err != nil {
		return nil, err
	}

	nodes := make([]model.Node, 0, len(records))
	for _, rec := range records {
		node, err := isis.Lift(rec)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	consolidated, failures := isis.Consolidate(nodes)
	for _, f := range failures {
		util.WithField("source", fmt.Sprintf("%T", s)).Warn(f.Error())
	}
	return consolidated, nil
}

// FetchStats joins `ip -j -s link show` counters with `show int json`
// addresses.
func (s *IsIsSource) FetchStats(ctx context.Context) ([]model.InterfaceStats, error) {
	linkOut, err := s.client.ExecuteCommand(ctx, "ip -j -s link show")
	if err != nil {
		return nil, err
	}
	linkStats, err := isis.ParseLinkStats([]byte(linkOut))
	if err != nil {
		return nil, err
	}

	intOut, err := s.client.ExecuteCommand(ctx, "vtysh -c 'show int json'")
	if err != nil {
		return nil, err
	}
	addrs, err := isis.ParseInterfaceAddresses([]byte(intOut))
	if err != nil {
		return nil, err
	}

	return isis.BuildInterfaceStats(linkStats, addrs), nil
}
