package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netgraph-io/netgraph/pkg/inventory"
	"github.com/netgraph-io/netgraph/pkg/persist"
	"github.com/netgraph-io/netgraph/pkg/store"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Poll every source in the inventory once and persist the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := inventory.Load(app.inventoryPath)
		if err != nil {
			return err
		}

		ctx := context.Background()
		sources, err := buildSources(ctx, inv)
		if err != nil {
			return err
		}
		defer closeSources(sources)

		// Seed from the prior snapshot (if any) so sources this round
		// doesn't touch keep their last-known state instead of
		// vanishing from the merged view; a missing/corrupt snapshot
		// just means this is the first poll.
		st := store.New()
		_ = persist.Load(st, app.snapshotPath)

		pollRound(ctx, st, sources)

		if err := persist.Save(st, app.snapshotPath); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		fmt.Printf("polled %d source(s), snapshot saved to %s\n", len(sources), app.snapshotPath)
		return nil
	},
}
