package signals

import (
	"os"
	"time"
)

// AccessTime returns the filesystem last-access time for path, or nil when
// the path is missing or the platform does not expose atime. Access times
// can be disabled system-wide (noatime), so this is a weak, last-resort
// signal only.
func (c *Collector) AccessTime(path string) *time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return nil
	}

	at, ok := statAccessTime(fi)
	if !ok {
		return nil
	}

	at = at.UTC()
	return &at
}

// ModTime returns the file modification time for path, or nil when the path
// is missing. More reliable than atime but it reflects installs and
// upgrades, not usage, so it is surfaced for diagnostics only and never
// merged into a usage estimate.
func (c *Collector) ModTime(path string) *time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return nil
	}

	mt := fi.ModTime().UTC()
	return &mt
}
