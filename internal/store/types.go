package store

import "time"

// Scan records one completed scan run for status reporting.
type Scan struct {
	ID           int64
	ScanType     string
	PackageCount int
	DurationMS   int64
	CreatedAt    time.Time
}
