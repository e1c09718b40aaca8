// netgraphd polls OSPF and IS-IS routers for their link-state
// databases and maintains a federated view of the topology.
//
// It is the minimal CLI bootstrap the core needs to be exercised
// end-to-end: an interactive graph renderer, label/floating-panel
// widgets, and edge-animation state are left to an external
// collaborator that this binary does not implement.
//
//	netgraphd poll [-i inventory.yaml]
//	netgraphd watch [-i inventory.yaml] [--interval 30]
//	netgraphd show [--connected-only] [--no-federate] [--json]
//	netgraphd sources
//	netgraphd snapshot save <path>
//	netgraphd snapshot load <path>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netgraph-io/netgraph/pkg/audit"
	"github.com/netgraph-io/netgraph/pkg/settings"
	"github.com/netgraph-io/netgraph/pkg/util"
	"github.com/netgraph-io/netgraph/pkg/version"
)

// App holds CLI state shared across all commands.
type App struct {
	inventoryPath string
	snapshotPath  string
	jsonOutput    bool
	verbose       bool

	settings *settings.Settings
}

var app = &App{}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "netgraphd",
	Short:         "Poll OSPF/IS-IS routers and federate their link-state views",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		app.settings, err = settings.Load()
		if err != nil {
			util.WithField("error", err).Warn("could not load settings, using defaults")
			app.settings = &settings.Settings{}
		}

		if app.inventoryPath == "" {
			app.inventoryPath = app.settings.GetInventoryPath()
		}
		if app.snapshotPath == "" {
			app.snapshotPath = app.settings.DefaultSnapshotPath
			if app.snapshotPath == "" {
				app.snapshotPath = defaultSnapshotPath
			}
		}

		if app.verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("info")
		}

		auditLogger, err := audit.NewFileLogger(app.settings.GetAuditLogPath(), audit.RotationConfig{
			MaxSize:    int64(app.settings.GetAuditMaxSizeMB()) * 1024 * 1024,
			MaxBackups: app.settings.GetAuditMaxBackups(),
		})
		if err != nil {
			util.WithField("error", err).Warn("could not initialize audit logging")
		} else {
			audit.SetDefaultLogger(auditLogger)
		}

		return nil
	},
}

// defaultSnapshotPath is where `poll`/`watch` persist the store and
// `show`/`sources` read it from, when neither --snapshot nor the
// settings file override it.
const defaultSnapshotPath = "/var/lib/netgraph/snapshot.json"

func init() {
	rootCmd.PersistentFlags().StringVarP(&app.inventoryPath, "inventory", "i", "", "Source inventory file (default: "+settings.DefaultInventoryPath+")")
	rootCmd.PersistentFlags().StringVar(&app.snapshotPath, "snapshot", "", "Snapshot file path (default: "+defaultSnapshotPath+")")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "JSON output")

	rootCmd.AddCommand(pollCmd, watchCmd, showCmd, sourcesCmd, snapshotCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
	},
}
