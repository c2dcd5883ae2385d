package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/macsweep/internal/output"
	"github.com/blackwell-systems/macsweep/internal/scanner"
	"github.com/blackwell-systems/macsweep/internal/signals"
	"github.com/blackwell-systems/macsweep/internal/usage"
)

var (
	scanQuiet     bool
	scanSkipUsage bool

	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Scan package managers and estimate usage",
		Long: `Scan every supported package source and store what was found in the
macsweep database, then estimate per-package usage from shell history,
Spotlight metadata and file access times.

Sources whose package manager is not installed are skipped silently.

The scan command should be run:
  • After installing macsweep for the first time
  • After installing or removing packages manually
  • Periodically to keep the database in sync`,
		Example: `  # Full scan with usage estimation
  macsweep scan

  # Inventory only, skip usage estimation
  macsweep scan --skip-usage

  # Scan quietly (suppress per-source output)
  macsweep scan --quiet`,
		RunE: runScan,
	}
)

func init() {
	scanCmd.Flags().BoolVar(&scanQuiet, "quiet", false, "suppress per-source output")
	scanCmd.Flags().BoolVar(&scanSkipUsage, "skip-usage", false, "skip usage estimation, inventory only")
}

func runScan(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	start := time.Now()

	var all []*scanner.Package
	for _, lister := range scanner.All() {
		if !lister.Available() {
			if !scanQuiet {
				fmt.Printf("  %s %-14s not installed\n", glyphSkip, lister.Source().Display())
			}
			continue
		}

		pkgs, err := lister.Scan()
		if err != nil {
			if !scanQuiet {
				fmt.Printf("  %s %-14s %v\n", glyphFail, lister.Source().Display(), err)
			}
			continue
		}

		if !scanQuiet {
			fmt.Printf("  %s %-14s %d packages\n", glyphOK, lister.Source().Display(), len(pkgs))
		}
		all = append(all, pkgs...)
	}

	if len(all) == 0 {
		return fmt.Errorf("no packages found from any source")
	}

	if !scanSkipUsage {
		collector := signals.NewCollector(settings.Scan.QueryTimeout)
		agg := usage.New(collector, historyLogs(settings))

		var bar *output.ProgressBar
		progress := func() {}
		if !scanQuiet {
			bar = output.NewProgress(len(all), "Estimating usage")
			progress = bar.Increment
		}

		estimates := agg.AggregateAll(context.Background(), all, settings.Scan.Workers, progress)
		if bar != nil {
			bar.Finish()
		}

		for i, est := range estimates {
			all[i].LastUsed = est.LastUsed
			all[i].UsageCount = est.UsageCount
		}
	}

	for _, pkg := range all {
		if err := db.UpsertPackage(pkg); err != nil {
			return fmt.Errorf("failed to store %s: %w", pkg.Name, err)
		}
	}

	// Rows not touched by this scan belong to uninstalled packages.
	pruned, err := db.PruneNotSeenSince(start)
	if err != nil {
		return err
	}

	scanType := "full"
	if scanSkipUsage {
		scanType = "inventory"
	}
	if _, err := db.RecordScan(scanType, len(all), time.Since(start)); err != nil {
		return err
	}

	if !scanQuiet {
		fmt.Printf("\nScanned %d packages in %s", len(all), time.Since(start).Round(time.Millisecond))
		if pruned > 0 {
			fmt.Printf(" (%d stale entries removed)", pruned)
		}
		fmt.Println()
	}

	return nil
}
