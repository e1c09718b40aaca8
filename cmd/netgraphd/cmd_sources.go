package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netgraph-io/netgraph/pkg/cli"
	"github.com/netgraph-io/netgraph/pkg/persist"
	"github.com/netgraph-io/netgraph/pkg/store"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List every source's health and freshness from the last persisted snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New()
		if err := persist.Load(st, app.snapshotPath); err != nil {
			return fmt.Errorf("loading snapshot %s: %w", app.snapshotPath, err)
		}

		ids := st.SourcesIter()

		if app.jsonOutput {
			type row struct {
				Source           string `json:"source"`
				Health           string `json:"health"`
				Nodes            int    `json:"nodes"`
				LastSnapshot     string `json:"last_snapshot"`
				LastStatusChange string `json:"last_status_change"`
			}
			rows := make([]row, 0, len(ids))
			for _, id := range ids {
				state, _ := st.GetSourceState(id)
				rows = append(rows, row{
					Source:           id.String(),
					Health:           state.Health.String(),
					Nodes:            len(state.Partition.Nodes),
					LastSnapshot:     state.LastSnapshot.Format(timeFormat),
					LastStatusChange: state.LastStatusChange.Format(timeFormat),
				})
			}
			data, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		t := cli.NewTable("SOURCE", "HEALTH", "NODES", "LAST SNAPSHOT", "LAST STATUS CHANGE")
		for _, id := range ids {
			state, _ := st.GetSourceState(id)
			health := state.Health.String()
			if state.Health.String() == "connected" {
				health = cli.Green(health)
			} else {
				health = cli.Red(health)
			}
			t.Row(id.String(), health, fmt.Sprintf("%d", len(state.Partition.Nodes)),
				state.LastSnapshot.Format(timeFormat), state.LastStatusChange.Format(timeFormat))
		}
		t.Flush()
		return nil
	},
}

const timeFormat = "2006-01-02 15:04:05"
