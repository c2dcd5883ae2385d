package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/macsweep/internal/output"
	"github.com/blackwell-systems/macsweep/internal/scanner"
)

var (
	listSource string

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List scanned packages and their usage estimates",
		Long: `List every package in the macsweep database with its size, last-used
estimate and usage count. Run 'macsweep scan' first to populate it.`,
		Example: `  # List everything
  macsweep list

  # Only Homebrew formulae
  macsweep list --source homebrew

  # Only application bundles
  macsweep list --source applications`,
		RunE: runList,
	}
)

func init() {
	listCmd.Flags().StringVar(&listSource, "source", "", "filter by source (homebrew, homebrew_cask, npm, pip, pipx, cargo, gem, applications)")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var pkgs []*scanner.Package
	if listSource != "" {
		pkgs, err = db.ListPackagesBySource(scanner.Source(listSource))
	} else {
		pkgs, err = db.ListPackages()
	}
	if err != nil {
		return err
	}

	fmt.Print(output.RenderPackageTable(pkgs))
	return nil
}
