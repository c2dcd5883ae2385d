package analyzer

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/blackwell-systems/macsweep/internal/scanner"
)

// Thresholds holds the tunable cutoffs for recommendation rules.
type Thresholds struct {
	// ReviewDays is the unused-duration beyond which an item is flagged
	// for review.
	ReviewDays int
	// WarningDays is the unused-duration beyond which an item gets a
	// warning-tier flag (when it does not already qualify for review).
	WarningDays int
	// NeverUsedMinBytes is the size an item with no usage evidence must
	// strictly exceed to be flagged.
	NeverUsedMinBytes int64
}

// DefaultThresholds returns the standard cutoffs: 90 days for review,
// 30 days for warning, 100 MiB for never-used items.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ReviewDays:        90,
		WarningDays:       30,
		NeverUsedMinBytes: 100 * 1024 * 1024,
	}
}

// Engine generates recommendations from scanned packages and the current
// orphan set. It holds no mutable state; a zero-value Engine with
// DefaultThresholds behaves identically across calls.
type Engine struct {
	Thresholds Thresholds
}

// NewEngine returns an Engine with the given thresholds.
func NewEngine(t Thresholds) *Engine {
	return &Engine{Thresholds: t}
}

// Generate evaluates each package against the rules in fixed precedence
// and returns at most one recommendation per package. Output is ordered
// by severity rank (Safe first), then recoverable size descending; ties
// keep input order.
//
// Rules, first match wins:
//  1. name in the orphan set                  -> Safe
//  2. unused >= ReviewDays                    -> Review
//  3. unused >= WarningDays                   -> Warning
//  4. no last-used, size > NeverUsedMinBytes  -> Review
func (e *Engine) Generate(pkgs []*scanner.Package, orphans map[string]struct{}, now time.Time) []Recommendation {
	var recs []Recommendation
	for _, pkg := range pkgs {
		if rec, ok := e.evaluate(pkg, orphans, now); ok {
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Severity != recs[j].Severity {
			return recs[i].Severity < recs[j].Severity
		}
		return recs[i].RecoverableBytes > recs[j].RecoverableBytes
	})
	return recs
}

func (e *Engine) evaluate(pkg *scanner.Package, orphans map[string]struct{}, now time.Time) (Recommendation, bool) {
	rec := Recommendation{
		Package:          pkg.Name,
		Source:           pkg.Source,
		RecoverableBytes: pkg.SizeBytes,
	}

	if _, ok := orphans[pkg.Name]; ok {
		rec.Severity = SeveritySafe
		rec.Reason = "Orphaned dependency - no longer required by any installed package"
		return rec, true
	}

	if pkg.LastUsed != nil {
		days := int(now.Sub(*pkg.LastUsed).Hours() / 24)
		switch {
		case days >= e.Thresholds.ReviewDays:
			rec.Severity = SeverityReview
			rec.Reason = fmt.Sprintf("Not used in %d days (~%d months)", days, days/30)
			return rec, true
		case days >= e.Thresholds.WarningDays:
			rec.Severity = SeverityWarning
			rec.Reason = fmt.Sprintf("Not used in %d days", days)
			return rec, true
		}
		return Recommendation{}, false
	}

	if pkg.SizeBytes > e.Thresholds.NeverUsedMinBytes {
		rec.Severity = SeverityReview
		rec.Reason = fmt.Sprintf("No usage data found - %s in size", humanize.IBytes(uint64(pkg.SizeBytes)))
		return rec, true
	}

	return Recommendation{}, false
}
