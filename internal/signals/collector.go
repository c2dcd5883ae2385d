// Package signals queries external, read-only sources of per-item usage
// evidence: macOS Spotlight usage bookkeeping for app bundles, and
// filesystem access times for binaries.
//
// Every query degrades to "no signal" on failure. A missing tool, an
// unreadable path, or a timed-out call produces nil results, never an
// error, so one unavailable source cannot abort an aggregation run.
package signals

import "time"

// DefaultTimeout bounds a single external metadata query.
const DefaultTimeout = 2 * time.Second

// Collector performs the external signal-source queries. It holds no open
// handles, so a single Collector is safe to share across worker goroutines.
type Collector struct {
	timeout time.Duration
}

// NewCollector returns a Collector whose metadata queries are bounded by
// the given timeout. A non-positive timeout selects DefaultTimeout.
func NewCollector(timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Collector{timeout: timeout}
}
