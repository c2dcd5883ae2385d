package usage

import "time"

// SignalSource names the provenance of one piece of usage evidence.
type SignalSource string

const (
	SignalShellHistory   SignalSource = "shell_history"
	SignalOSMetadata     SignalSource = "os_metadata"
	SignalFileAccessTime SignalSource = "file_atime"
)

// Signal is one provenance-tagged piece of evidence that contributed to an
// estimate, kept for explainability.
type Signal struct {
	Source   SignalSource
	LastUsed *time.Time // observed instant; the atime itself for file_atime
	Count    int        // history matches or the OS-reported use count
}

// Estimate is the canonical merged usage estimate for one item.
//
// Invariant: UsageCount > 0 implies Signals is non-empty — every counted
// use is attributable to at least one recorded signal.
type Estimate struct {
	LastUsed   *time.Time
	UsageCount int
	Signals    []Signal
}
