// Package output provides terminal output utilities for macsweep.
//
// This package includes:
//   - Table rendering for scanned packages, recommendations, and backups
//   - Progress bars and spinners for long-running scans
//   - Human-readable formatting for sizes and dates
//
// All table rendering uses ASCII characters and ANSI color codes for
// terminal output. Progress indicators are thread-safe.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/macsweep/internal/analyzer"
	"github.com/blackwell-systems/macsweep/internal/cleanup"
	"github.com/blackwell-systems/macsweep/internal/scanner"
)

// ANSI color codes for severity display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderPackageTable renders scanned packages with their usage estimates.
// Expects packages pre-sorted by the caller (the store lists them ordered
// by source then name).
func RenderPackageTable(packages []*scanner.Package) string {
	if len(packages) == 0 {
		return "No packages found. Run 'macsweep scan' first.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-24s %-13s %-10s %-9s %-14s %s\n",
		"Package", "Source", "Version", "Size", "Last Used", "Uses"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, pkg := range packages {
		sb.WriteString(fmt.Sprintf("%-24s %-13s %-10s %-9s %-14s %d\n",
			truncate(pkg.Name, 24),
			pkg.Source.Display(),
			truncate(pkg.Version, 10),
			FormatSize(pkg.SizeBytes),
			FormatRelativeTime(pkg.LastUsed),
			pkg.UsageCount))
	}

	return sb.String()
}

// RenderRecommendationTable renders recommendations grouped by the order
// the engine produced them (severity rank, then size). Severity labels are
// colored green/yellow/red when color is enabled.
func RenderRecommendationTable(recs []analyzer.Recommendation) string {
	if len(recs) == 0 {
		return "Nothing to clean up. Everything looks in use.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-24s %-13s %-9s %-9s %s\n",
		"Package", "Source", "Severity", "Size", "Reason"))
	sb.WriteString(strings.Repeat("─", 100))
	sb.WriteString("\n")

	for _, rec := range recs {
		sb.WriteString(fmt.Sprintf("%-24s %-13s %s %-9s %s\n",
			truncate(rec.Package, 24),
			rec.Source.Display(),
			severityCell(rec.Severity),
			FormatSize(rec.RecoverableBytes),
			rec.Reason))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Recoverable: %s across %d packages\n",
		FormatSize(analyzer.TotalRecoverable(recs)), len(recs)))

	return sb.String()
}

// severityCell returns the padded, optionally colored severity label.
// Padding is applied before coloring so ANSI codes do not skew the column.
func severityCell(sev analyzer.Severity) string {
	label := fmt.Sprintf("%-8s", sev.String())
	return colorize(severityColor(sev), label)
}

// severityColor returns the ANSI color code for a severity tier.
func severityColor(sev analyzer.Severity) string {
	switch sev {
	case analyzer.SeveritySafe:
		return colorGreen
	case analyzer.SeverityReview:
		return colorYellow
	case analyzer.SeverityWarning:
		return colorRed
	default:
		return colorGray
	}
}

// RenderBackupTable renders backup manifests, expected newest first.
func RenderBackupTable(manifests []*cleanup.Manifest) string {
	if len(manifests) == 0 {
		return "No backups found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-34s %-17s %-10s %s\n",
		"ID", "Created", "Packages", "Size"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for _, m := range manifests {
		created := FormatRelativeTime(&m.CreatedAt)
		sb.WriteString(fmt.Sprintf("%-34s %-17s %-10d %s\n",
			m.ID,
			created,
			len(m.Packages),
			FormatSize(m.TotalBytes())))
	}

	return sb.String()
}

// FormatSize converts bytes to a human-readable binary size, e.g. "42 MiB".
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatRelativeTime converts a timestamp to relative time (e.g. "2 days ago").
// A nil timestamp renders as "never".
func FormatRelativeTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "never"
	}

	diff := time.Since(*t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
