package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/netgraph-io/netgraph/pkg/inventory"
	"github.com/netgraph-io/netgraph/pkg/persist"
	"github.com/netgraph-io/netgraph/pkg/store"
	"github.com/netgraph-io/netgraph/pkg/util"
)

var watchIntervalSeconds int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll every source on a fixed interval until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := inventory.Load(app.inventoryPath)
		if err != nil {
			return err
		}

		interval := watchIntervalSeconds
		if interval <= 0 {
			interval = app.settings.GetPollInterval()
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		sources, err := buildSources(ctx, inv)
		if err != nil {
			return err
		}
		defer closeSources(sources)

		st := store.New()
		_ = persist.Load(st, app.snapshotPath)

		ticker := time.NewTicker(time.Duration(interval) * time.Second)
		defer ticker.Stop()

		fmt.Printf("watching %d source(s) every %ds (ctrl-c to stop)\n", len(sources), interval)
		for {
			pollRound(ctx, st, sources)
			if err := persist.Save(st, app.snapshotPath); err != nil {
				util.WithField("error", err).Error("saving snapshot")
			}

			select {
			case <-ctx.Done():
				fmt.Println("watch stopped")
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	watchCmd.Flags().IntVar(&watchIntervalSeconds, "interval", 0, "Poll interval in seconds (default: from settings)")
}
