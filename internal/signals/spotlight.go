package signals

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"time"
)

var (
	// mdls prints datetimes as "2026-01-18 21:35:48 +0000".
	mdlsDateRE = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2}) (\d{2}):(\d{2}):(\d{2})`)

	// mdls prints counts as "kMDItemUseCount = 1033". Anchoring on the
	// attribute name keeps the date line's digits from matching.
	mdlsCountRE = regexp.MustCompile(`kMDItemUseCount\s*=\s*(\d+)`)
)

// SpotlightUsage queries macOS Spotlight bookkeeping for an app bundle and
// returns its last-used instant and use count. Either or both may be nil:
// mdls missing, the query timing out, or "(null)" attributes all degrade to
// absent values rather than errors. Only meaningful for bundle-style installs.
func (c *Collector) SpotlightUsage(ctx context.Context, path string) (*time.Time, *int) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "mdls",
		"-name", "kMDItemLastUsedDate",
		"-name", "kMDItemUseCount",
		path)
	out, err := cmd.Output()
	if err != nil {
		return nil, nil
	}

	return parseSpotlightTime(string(out)), parseSpotlightCount(string(out))
}

// parseSpotlightTime extracts the last-used datetime from mdls output.
// Spotlight reports these values in UTC ("+0000").
func parseSpotlightTime(out string) *time.Time {
	m := mdlsDateRE.FindStringSubmatch(out)
	if m == nil {
		// Covers "(null)" attributes and empty output.
		return nil
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return &t
}

func parseSpotlightCount(out string) *int {
	m := mdlsCountRE.FindStringSubmatch(out)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
