package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/blackwell-systems/macsweep/internal/analyzer"
	"github.com/blackwell-systems/macsweep/internal/config"
	"github.com/blackwell-systems/macsweep/internal/history"
	"github.com/blackwell-systems/macsweep/internal/scanner"
	"github.com/blackwell-systems/macsweep/internal/store"
)

// openStore opens the database at the resolved path and ensures the schema
// exists. Callers own the returned store and must Close it.
func openStore() (*store.Store, error) {
	if dbPath == "" {
		if _, err := config.EnsureDir(); err != nil {
			return nil, err
		}
	}

	db, err := store.New(resolveDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}

	return db, nil
}

// loadSettings loads config file, environment and defaults.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return settings, nil
}

// historyLogs resolves which shell history files to parse. Explicit paths
// from the config win; otherwise the standard per-shell locations are used.
func historyLogs(settings *config.Settings) []history.Log {
	if len(settings.History.Files) > 0 {
		logs := make([]history.Log, 0, len(settings.History.Files))
		for _, path := range settings.History.Files {
			logs = append(logs, history.Log{Path: path, Format: history.GuessFormat(path)})
		}
		return logs
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return history.DefaultLogs(home)
}

// thresholds maps config settings to analyzer thresholds.
func thresholds(settings *config.Settings) analyzer.Thresholds {
	return analyzer.Thresholds{
		ReviewDays:        settings.Recommend.ReviewDays,
		WarningDays:       settings.Recommend.WarningDays,
		NeverUsedMinBytes: settings.Recommend.NeverUsedMinBytes,
	}
}

// sourceGlyph returns a colored status glyph for a scan result line.
var (
	glyphOK   = color.New(color.FgGreen).Sprint("✓")
	glyphSkip = color.New(color.FgYellow).Sprint("-")
	glyphFail = color.New(color.FgRed).Sprint("✗")
)

// orphanNames builds the orphan lookup set for the recommendation engine.
// Orphan detection only applies to Homebrew; failure degrades to an empty
// set so recommendations still work.
func orphanNames() map[string]struct{} {
	return scanner.OrphanSet()
}
