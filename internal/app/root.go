// Package app wires the macsweep CLI commands together.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/macsweep/internal/config"
)

var (
	dbPath string

	// RootCmd is the root command for macsweep
	RootCmd = &cobra.Command{
		Use:   "macsweep",
		Short: "Find and remove unused packages and applications on macOS",
		Long: `macsweep scans every package manager on your Mac (Homebrew, npm, pip,
pipx, cargo, gem) plus /Applications, estimates how recently each item
was actually used, and recommends what is safe to remove.

Usage estimation combines three evidence sources:
  • Shell history (zsh, bash, fish) for command-line tools
  • Spotlight metadata for application bundles
  • File access times as a last resort

Quick Start:
  1. macsweep scan          # index everything and estimate usage
  2. macsweep recommend     # see what can go
  3. macsweep remove --severity safe --dry-run
  4. macsweep remove --severity safe

Examples:
  # Scan all package sources
  macsweep scan

  # List everything that was found
  macsweep list

  # Show cleanup recommendations
  macsweep recommend

  # Remove safe items after a backup manifest is written
  macsweep remove --severity safe

  # Keep estimates fresh as you work
  macsweep watch --daemon`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("macsweep: unused package cleanup for macOS")
			fmt.Println()
			if _, err := os.Stat(resolveDBPath()); os.IsNotExist(err) {
				fmt.Println("Run 'macsweep scan' to get started.")
			} else {
				fmt.Println("Tip: Run 'macsweep recommend' to view cleanup suggestions.")
				fmt.Println("     Run 'macsweep status' to check the database state.")
			}
			fmt.Println("Run 'macsweep --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.macsweep/macsweep.db)")

	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(scanCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(recommendCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(backupsCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(statusCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// resolveDBPath returns the database path from the --db flag or the default
// location under ~/.macsweep.
func resolveDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return config.DBPath()
}
