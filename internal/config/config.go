// Package config loads macsweep settings from config file, environment
// and defaults, and resolves the data directory paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds the resolved configuration.
type Settings struct {
	Recommend RecommendSettings `mapstructure:"recommend"`
	Scan      ScanSettings      `mapstructure:"scan"`
	History   HistorySettings   `mapstructure:"history"`
}

// RecommendSettings tunes the recommendation thresholds.
type RecommendSettings struct {
	ReviewDays        int   `mapstructure:"review-days"`
	WarningDays       int   `mapstructure:"warning-days"`
	NeverUsedMinBytes int64 `mapstructure:"never-used-min-bytes"`
}

// ScanSettings tunes scan behavior.
type ScanSettings struct {
	Workers      int           `mapstructure:"workers"`
	QueryTimeout time.Duration `mapstructure:"query-timeout"`
}

// HistorySettings overrides shell history discovery. When Files is empty
// the standard per-shell locations are probed.
type HistorySettings struct {
	Files []string `mapstructure:"files"`
}

// Load reads config.yaml from the macsweep directory, applies MACSWEEP_*
// environment overrides and returns the merged settings. A missing config
// file is not an error; defaults apply.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())

	v.SetEnvPrefix("MACSWEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("recommend.review-days", 90)
	v.SetDefault("recommend.warning-days", 30)
	v.SetDefault("recommend.never-used-min-bytes", int64(100*1024*1024))
	v.SetDefault("scan.workers", 4)
	v.SetDefault("scan.query-timeout", 2*time.Second)
	v.SetDefault("history.files", []string{})
}

// Dir returns the macsweep data directory (~/.macsweep), creating nothing.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".macsweep"
	}
	return filepath.Join(home, ".macsweep")
}

// EnsureDir creates the data directory if needed and returns it.
func EnsureDir() (string, error) {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// DBPath returns the SQLite database path inside the data directory.
func DBPath() string {
	return filepath.Join(Dir(), "macsweep.db")
}

// BackupDir returns the cleanup manifest directory.
func BackupDir() string {
	return filepath.Join(Dir(), "backups")
}

// PIDFile returns the watcher daemon PID file path.
func PIDFile() string {
	return filepath.Join(Dir(), "watcher.pid")
}

// LogFile returns the watcher daemon log file path.
func LogFile() string {
	return filepath.Join(Dir(), "watcher.log")
}
