package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netgraph-io/netgraph/pkg/persist"
	"github.com/netgraph-io/netgraph/pkg/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save or load a TopologyStore snapshot",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <path>",
	Short: "Copy the current default snapshot to <path>",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New()
		if err := persist.Load(st, app.snapshotPath); err != nil {
			return fmt.Errorf("loading snapshot %s: %w", app.snapshotPath, err)
		}
		if err := persist.Save(st, args[0]); err != nil {
			return err
		}
		fmt.Printf("saved snapshot to %s\n", args[0])
		return nil
	},
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load <path>",
	Short: "Load <path> and make it the default snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New()
		if err := persist.Load(st, args[0]); err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}
		if err := persist.Save(st, app.snapshotPath); err != nil {
			return err
		}
		fmt.Printf("loaded %s as the default snapshot (%s)\n", args[0], app.snapshotPath)
		return nil
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotLoadCmd)
}
