package scanner

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// GemLister scans Ruby gems installed in the active gem environment.
type GemLister struct{}

// gemListRE matches `gem list` lines such as "rake (13.2.1, 13.0.6)".
var gemListRE = regexp.MustCompile(`^(\S+) \(([^)]+)\)`)

func (l *GemLister) Source() Source { return SourceGem }

func (l *GemLister) Available() bool {
	_, err := exec.LookPath("gem")
	return err == nil
}

func (l *GemLister) Scan() ([]*Package, error) {
	out, err := exec.Command("gem", "list", "--local").Output()
	if err != nil {
		return nil, fmt.Errorf("gem list failed: %w", err)
	}

	var packages []*Package
	for _, line := range splitLines(string(out)) {
		m := gemListRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		pkg := &Package{
			Name:   m[1],
			Source: SourceGem,
		}

		// Only the newest installed version is reported.
		versions := strings.Split(m[2], ",")
		pkg.Version = strings.TrimSpace(versions[0])

		if path, err := exec.LookPath(pkg.Name); err == nil {
			pkg.BinaryPath = path
			pkg.SizeBytes = fileSize(path)
		}

		packages = append(packages, pkg)
	}

	return packages, nil
}

// splitLines splits command output into lines without trailing newlines.
func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// homeDir wraps os.UserHomeDir so scanners share one lookup path.
func homeDir() (string, error) {
	return os.UserHomeDir()
}
