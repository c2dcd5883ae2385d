package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/macsweep/internal/analyzer"
	"github.com/blackwell-systems/macsweep/internal/cleanup"
	"github.com/blackwell-systems/macsweep/internal/config"
	"github.com/blackwell-systems/macsweep/internal/output"
	"github.com/blackwell-systems/macsweep/internal/scanner"
)

var (
	removeSeverity string
	removeDryRun   bool
	removeYes      bool

	removeCmd = &cobra.Command{
		Use:   "remove",
		Short: "Remove recommended packages through their package managers",
		Long: `Remove packages the recommendation engine flagged, after writing a backup
manifest to ~/.macsweep/backups. Each package is uninstalled through its
own package manager (brew, npm, pip3, pipx, cargo, gem); application
bundles are moved to the Trash via Finder.

By default only 'safe' recommendations are removed. Use --severity to
include review or warning tiers, and --dry-run to preview.`,
		Example: `  # Preview what would be removed
  macsweep remove --dry-run

  # Remove safe items (prompts for confirmation)
  macsweep remove

  # Remove review-tier items without prompting
  macsweep remove --severity review --yes`,
		RunE: runRemove,
	}
)

func init() {
	removeCmd.Flags().StringVar(&removeSeverity, "severity", "safe", "severity tier to remove (safe, review, warning)")
	removeCmd.Flags().BoolVar(&removeDryRun, "dry-run", false, "show what would be removed without removing")
	removeCmd.Flags().BoolVar(&removeYes, "yes", false, "skip the confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	sev, ok := analyzer.ParseSeverity(removeSeverity)
	if !ok {
		return fmt.Errorf("unknown severity %q (want safe, review or warning)", removeSeverity)
	}

	recs, err := generateRecommendations()
	if err != nil {
		return err
	}
	recs = filterBySeverity(recs, sev)
	if len(recs) == 0 {
		fmt.Printf("No %s recommendations to remove.\n", sev)
		return nil
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	// Re-resolve the full package rows; recommendations only carry summaries.
	var pkgs []*scanner.Package
	for _, rec := range recs {
		pkg, err := db.GetPackage(rec.Package, rec.Source)
		if err != nil {
			return err
		}
		pkgs = append(pkgs, pkg)
	}

	fmt.Print(output.RenderRecommendationTable(recs))
	fmt.Println()

	if removeDryRun {
		fmt.Println("Dry run: nothing was removed.")
		executor := &cleanup.Executor{DryRun: true}
		for _, pkg := range pkgs {
			desc, err := executor.Remove(pkg)
			if err != nil {
				fmt.Printf("  %s %s: %v\n", glyphFail, pkg.Name, err)
				continue
			}
			fmt.Printf("  would run: %s\n", desc)
		}
		return nil
	}

	if !removeYes && !confirm(fmt.Sprintf("Remove %d packages?", len(pkgs))) {
		fmt.Println("Aborted.")
		return nil
	}

	manifest, err := cleanup.CreateBackup(config.BackupDir(), pkgs, false)
	if err != nil {
		return fmt.Errorf("failed to write backup manifest: %w", err)
	}
	fmt.Printf("Backup manifest: %s\n\n", manifest.ID)

	executor := &cleanup.Executor{}
	removed := 0
	var freed int64
	for _, pkg := range pkgs {
		desc, err := executor.Remove(pkg)
		if err != nil {
			fmt.Printf("  %s %s: %v\n", glyphFail, pkg.Name, err)
			continue
		}
		fmt.Printf("  %s %s (%s)\n", glyphOK, pkg.Name, desc)

		if err := db.DeletePackage(pkg.Name, pkg.Source); err != nil {
			fmt.Fprintf(os.Stderr, "macsweep: failed to drop %s from database: %v\n", pkg.Name, err)
		}
		removed++
		freed += pkg.SizeBytes
	}

	fmt.Printf("\nRemoved %d of %d packages, %s freed.\n",
		removed, len(pkgs), output.FormatSize(freed))
	return nil
}

// confirm prompts on stdin for a y/N answer.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
