package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/macsweep/internal/config"
	"github.com/blackwell-systems/macsweep/internal/history"
	"github.com/blackwell-systems/macsweep/internal/output"
	"github.com/blackwell-systems/macsweep/internal/watcher"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and watcher status",
	Long: `Show the state of the macsweep database (package count, total size,
last scan) and whether the background watcher is running.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	path := resolveDBPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Database: not created yet. Run 'macsweep scan' first.")
		return nil
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := db.CountPackages()
	if err != nil {
		return err
	}
	total, err := db.TotalSizeBytes()
	if err != nil {
		return err
	}

	fmt.Printf("Database:  %s\n", path)
	fmt.Printf("Packages:  %d (%s on disk)\n", count, output.FormatSize(total))

	last, err := db.LastScan()
	if err != nil {
		return err
	}
	if last == nil {
		fmt.Println("Last scan: never")
	} else {
		fmt.Printf("Last scan: %s (%s, %d packages, %dms)\n",
			output.FormatRelativeTime(&last.CreatedAt), last.ScanType,
			last.PackageCount, last.DurationMS)
	}

	if home, err := os.UserHomeDir(); err == nil {
		if log, ok := history.DetectLog(home); ok {
			fmt.Printf("History:   %s (%s)\n", log.Format, log.Path)
		} else {
			fmt.Println("History:   no shell history found")
		}
	}

	running, err := watcher.IsDaemonRunning(config.PIDFile())
	if err != nil {
		return err
	}
	if running {
		fmt.Println("Watcher:   running")
	} else {
		fmt.Println("Watcher:   not running (start with 'macsweep watch --daemon')")
	}

	return nil
}
