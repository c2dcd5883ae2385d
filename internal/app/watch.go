package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/macsweep/internal/config"
	"github.com/blackwell-systems/macsweep/internal/signals"
	"github.com/blackwell-systems/macsweep/internal/usage"
	"github.com/blackwell-systems/macsweep/internal/watcher"
)

var (
	watchDaemon     bool
	watchForeground bool
	watchStop       bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Keep usage estimates fresh as shell history changes",
		Long: `Watch the shell history files and re-estimate usage for stored packages
whenever they change. With --daemon the watcher runs detached in the
background; --foreground keeps it attached to the terminal.`,
		Example: `  # Run in the background
  macsweep watch --daemon

  # Run attached (Ctrl-C to stop)
  macsweep watch --foreground

  # Stop the background watcher
  macsweep watch --stop`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run detached in the background")
	watchCmd.Flags().BoolVar(&watchForeground, "foreground", false, "run attached to the terminal")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop the background watcher")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if _, err := config.EnsureDir(); err != nil {
		return err
	}

	switch {
	case watchStop:
		if err := watcher.StopDaemon(config.PIDFile()); err != nil {
			return err
		}
		fmt.Println("Watcher stopped.")
		return nil

	case watchDaemon:
		if err := watcher.StartDaemon(config.PIDFile(), config.LogFile()); err != nil {
			return err
		}
		fmt.Println("Watcher started in the background.")
		fmt.Printf("Log: %s\n", config.LogFile())
		return nil

	case watchForeground:
		w, err := newHistoryWatcher()
		if err != nil {
			return err
		}
		fmt.Println("Watching shell history (Ctrl-C to stop)...")
		return w.RunForeground(config.PIDFile())

	default:
		return fmt.Errorf("specify --daemon, --foreground or --stop")
	}
}

// newHistoryWatcher builds a watcher whose refresh re-runs usage estimation
// over all stored packages and writes the results back.
func newHistoryWatcher() (*watcher.Watcher, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	logs := historyLogs(settings)
	refresh := func() error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		pkgs, err := db.ListPackages()
		if err != nil {
			return err
		}
		if len(pkgs) == 0 {
			return nil
		}

		// A fresh aggregator per refresh re-reads the history files.
		collector := signals.NewCollector(settings.Scan.QueryTimeout)
		agg := usage.New(collector, logs)
		estimates := agg.AggregateAll(context.Background(), pkgs, settings.Scan.Workers, nil)

		for i, est := range estimates {
			if err := db.UpdateUsage(pkgs[i].Name, pkgs[i].Source, est.LastUsed, est.UsageCount); err != nil {
				return err
			}
		}
		return nil
	}

	return watcher.New(logs, refresh)
}
