// Package scanner discovers installed packages across the supported package
// managers and install mechanisms (Homebrew, npm, pip/pipx, cargo, gem, and
// macOS application bundles).
package scanner

import "time"

// Source identifies which package manager or install mechanism owns an item.
// The source is resolved once at the scanning boundary; downstream code
// branches on this tag instead of per-manager types.
type Source string

const (
	SourceHomebrew     Source = "homebrew"
	SourceHomebrewCask Source = "homebrew_cask"
	SourceNpm          Source = "npm"
	SourcePip          Source = "pip"
	SourcePipx         Source = "pipx"
	SourceCargo        Source = "cargo"
	SourceGem          Source = "gem"
	SourceApplications Source = "applications"
)

// IsBundle reports whether items from this source are app-bundle installs,
// whose usage is tracked by OS metadata rather than shell history.
func (s Source) IsBundle() bool {
	return s == SourceHomebrewCask || s == SourceApplications
}

// Display returns the human-readable name for the source.
func (s Source) Display() string {
	switch s {
	case SourceHomebrew:
		return "Homebrew"
	case SourceHomebrewCask:
		return "Homebrew Cask"
	case SourceNpm:
		return "npm"
	case SourcePip:
		return "pip"
	case SourcePipx:
		return "pipx"
	case SourceCargo:
		return "cargo"
	case SourceGem:
		return "gem"
	case SourceApplications:
		return "Applications"
	default:
		return string(s)
	}
}

// Package is one installed item discovered by a scanner.
//
// LastUsed and UsageCount are not populated by scanners; they are filled in
// by usage aggregation and are the only fields this tool writes back to
// persistent storage.
type Package struct {
	Name         string
	Version      string
	Source       Source
	InstallDate  *time.Time
	SizeBytes    int64  // 0 when unknown
	BinaryPath   string // binary or bundle path; "" when none is known
	IsDependency bool
	LastUsed     *time.Time
	UsageCount   int
}

// Lister scans a single package source.
type Lister interface {
	// Source returns the source tag this lister produces packages for.
	Source() Source
	// Available reports whether the underlying package manager exists on
	// this system.
	Available() bool
	// Scan enumerates installed packages. A manager that is installed but
	// has nothing installed returns an empty slice, not an error.
	Scan() ([]*Package, error)
}

// All returns every lister in a fixed, deterministic order.
func All() []Lister {
	return []Lister{
		&HomebrewLister{},
		&NpmLister{},
		&PipLister{},
		&PipxLister{},
		&CargoLister{},
		&GemLister{},
		&ApplicationsLister{},
	}
}
