// Package analyzer turns persisted usage estimates into ordered,
// severity-tiered cleanup recommendations.
package analyzer

import "github.com/blackwell-systems/macsweep/internal/scanner"

// Severity encodes confidence that removing an item is harmless. The
// numeric rank is the primary output sort key: Safe sorts first.
type Severity int

const (
	SeveritySafe    Severity = iota // orphaned dependency, removable outright
	SeverityReview                  // long unused, or large with no usage data
	SeverityWarning                 // unused 30-90 days, check before removing
)

// String returns the lowercase display name for the severity.
func (s Severity) String() string {
	switch s {
	case SeveritySafe:
		return "safe"
	case SeverityReview:
		return "review"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a display name back to its Severity.
func ParseSeverity(name string) (Severity, bool) {
	switch name {
	case "safe":
		return SeveritySafe, true
	case "review":
		return SeverityReview, true
	case "warning":
		return SeverityWarning, true
	default:
		return 0, false
	}
}

// Recommendation is one cleanup suggestion. It is immutable once produced
// and carries everything the presentation and removal layers need.
type Recommendation struct {
	Package          string
	Source           scanner.Source
	Reason           string
	Severity         Severity
	RecoverableBytes int64
}

// TotalRecoverable sums the recoverable size across recommendations.
func TotalRecoverable(recs []Recommendation) int64 {
	var total int64
	for _, r := range recs {
		total += r.RecoverableBytes
	}
	return total
}
