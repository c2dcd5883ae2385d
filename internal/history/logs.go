package history

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Format identifies one of the supported on-disk history log formats.
type Format string

const (
	FormatZsh  Format = "zsh"
	FormatBash Format = "bash"
	FormatFish Format = "fish"
)

// Log names a history file together with the format it is parsed with.
type Log struct {
	Path   string
	Format Format
}

// Parse dispatches to the parser for the log's declared format. Unknown
// formats yield no entries.
func Parse(l Log) []Entry {
	switch l.Format {
	case FormatZsh:
		return ParseZsh(l.Path)
	case FormatBash:
		return ParseBash(l.Path)
	case FormatFish:
		return ParseFish(l.Path)
	default:
		return nil
	}
}

// DefaultLogs returns the standard history log locations under the given
// home directory. Files that do not exist parse to empty sequences, so the
// full set can be handed to ParseAll unchecked.
func DefaultLogs(home string) []Log {
	return []Log{
		{Path: filepath.Join(home, ".zsh_history"), Format: FormatZsh},
		{Path: filepath.Join(home, ".bash_history"), Format: FormatBash},
		{Path: filepath.Join(home, ".local/share/fish/fish_history"), Format: FormatFish},
	}
}

// DetectLog returns the history log for the user's login shell, based on
// $SHELL, falling back to the first default log that exists on disk.
func DetectLog(home string) (Log, bool) {
	shell := os.Getenv("SHELL")
	switch {
	case strings.Contains(shell, "zsh"):
		return Log{Path: filepath.Join(home, ".zsh_history"), Format: FormatZsh}, true
	case strings.Contains(shell, "bash"):
		return Log{Path: filepath.Join(home, ".bash_history"), Format: FormatBash}, true
	case strings.Contains(shell, "fish"):
		return Log{Path: filepath.Join(home, ".local/share/fish/fish_history"), Format: FormatFish}, true
	}

	for _, l := range DefaultLogs(home) {
		if _, err := os.Stat(l.Path); err == nil {
			return l, true
		}
	}

	return Log{}, false
}

// GuessFormat infers a log's format from its file name, for user-supplied
// history file overrides.
func GuessFormat(path string) Format {
	base := filepath.Base(path)
	switch {
	case strings.Contains(base, "bash"):
		return FormatBash
	case strings.Contains(base, "fish"):
		return FormatFish
	default:
		return FormatZsh
	}
}

// ParseAll parses every given log and returns the merged entries sorted with
// Sort. The result does not depend on filesystem enumeration order.
func ParseAll(logs []Log) []Entry {
	var all []Entry
	for _, l := range logs {
		all = append(all, Parse(l)...)
	}
	Sort(all)
	return all
}

// Sort orders entries by timestamp descending with timestamp-less entries
// last. The sort is stable so equal timestamps keep their relative order.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Timestamp, entries[j].Timestamp
		switch {
		case a != nil && b != nil:
			return a.After(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})
}
