package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/macsweep/internal/cleanup"
	"github.com/blackwell-systems/macsweep/internal/config"
	"github.com/blackwell-systems/macsweep/internal/output"
)

var backupsCmd = &cobra.Command{
	Use:   "backups [id]",
	Short: "List cleanup backup manifests",
	Long: `List the backup manifests written before removals, newest first. Pass a
manifest ID to show the packages it recorded, with versions for manual
reinstallation.`,
	Example: `  # List all backups
  macsweep backups

  # Show one manifest in detail
  macsweep backups cleanup_20260110-090000_1a2b3c4d`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackups,
}

func runBackups(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		manifest, err := cleanup.LoadManifest(config.BackupDir(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Backup %s (created %s)\n\n", manifest.ID,
			manifest.CreatedAt.Local().Format("2006-01-02 15:04"))
		for _, pkg := range manifest.Packages {
			version := pkg.Version
			if version == "" {
				version = "-"
			}
			fmt.Printf("  %-24s %-10s %-13s %s\n",
				pkg.Name, version, pkg.Source, output.FormatSize(pkg.SizeBytes))
		}
		fmt.Printf("\nTotal: %s across %d packages\n",
			output.FormatSize(manifest.TotalBytes()), len(manifest.Packages))
		return nil
	}

	manifests, err := cleanup.ListBackups(config.BackupDir())
	if err != nil {
		return err
	}
	fmt.Print(output.RenderBackupTable(manifests))
	return nil
}
