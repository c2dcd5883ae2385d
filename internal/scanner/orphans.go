package scanner

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// OrphanSet returns the names of Homebrew packages no installed package
// requires, per `brew autoremove --dry-run`. When brew is missing or the
// call fails, the result is an empty set with a warning on stderr; orphan
// detection is never allowed to fail a run.
func OrphanSet() map[string]struct{} {
	out, err := exec.Command("brew", "autoremove", "--dry-run").Output()
	if err != nil {
		fmt.Fprintf(os.Stderr, "macsweep: orphan detection unavailable: %v\n", err)
		return map[string]struct{}{}
	}
	return parseOrphans(string(out))
}

// parseOrphans extracts package names from autoremove output. Names follow
// the "==> Would autoremove" header, one per line.
func parseOrphans(out string) map[string]struct{} {
	orphans := make(map[string]struct{})

	parsing := false
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "==> Would autoremove") {
			parsing = true
			continue
		}

		if parsing && line != "" && !strings.HasPrefix(line, "==>") {
			orphans[line] = struct{}{}
		}
	}

	return orphans
}
