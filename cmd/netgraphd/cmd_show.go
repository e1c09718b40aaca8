package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netgraph-io/netgraph/pkg/cli"
	"github.com/netgraph-io/netgraph/pkg/federation"
	"github.com/netgraph-io/netgraph/pkg/model"
	"github.com/netgraph-io/netgraph/pkg/persist"
	"github.com/netgraph-io/netgraph/pkg/store"
)

var (
	showConnectedOnly bool
	showNoFederate    bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the federated topology from the last persisted snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New()
		if err := persist.Load(st, app.snapshotPath); err != nil {
			return fmt.Errorf("loading snapshot %s: %w", app.snapshotPath, err)
		}

		cfg := model.MergeConfig{ConnectedOnly: showConnectedOnly}
		if !showNoFederate {
			cfg.Federator = federation.OSPFFederator{}
		}

		nodes, err := st.BuildMergedViewWith(cfg)
		if err != nil {
			return err
		}

		if app.jsonOutput {
			data, err := json.MarshalIndent(nodes, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		renderNodesTable(nodes)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showConnectedOnly, "connected-only", false, "Only include sources currently Connected")
	showCmd.Flags().BoolVar(&showNoFederate, "no-federate", false, "Skip federation; emit the first facet per identity")
}

func renderNodesTable(nodes []model.Node) {
	t := cli.NewTable("KIND", "ID", "LABEL", "IDENTITY", "SOURCE")
	for _, n := range nodes {
		kind, identity := "router", ""
		if n.Info.Kind == model.NodeKindRouter {
			identity = n.Info.Router.ID.String()
		} else {
			kind = "network"
			identity = n.Info.Network.Prefix.String()
		}
		src := "-"
		if n.SourceID != nil {
			src = n.SourceID.String()
		}
		t.Row(kind, n.ID.String(), n.Label, identity, src)
	}
	t.Flush()
}
