package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ApplicationsLister scans macOS application bundles in /Applications and
// the user's ~/Applications. Bundles are tracked by Spotlight metadata, not
// shell history, so BinaryPath is the bundle path itself.
type ApplicationsLister struct{}

func (l *ApplicationsLister) Source() Source { return SourceApplications }

func (l *ApplicationsLister) Available() bool {
	if runtime.GOOS != "darwin" {
		return false
	}
	_, err := os.Stat("/Applications")
	return err == nil
}

func (l *ApplicationsLister) Scan() ([]*Package, error) {
	dirs := []string{"/Applications"}
	if home, err := homeDir(); err == nil {
		userApps := filepath.Join(home, "Applications")
		if _, err := os.Stat(userApps); err == nil {
			dirs = append(dirs, userApps)
		}
	}

	var packages []*Package
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// One unreadable directory should not sink the rest.
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasSuffix(name, ".app") {
				continue
			}

			path := filepath.Join(dir, name)
			packages = append(packages, &Package{
				Name:       strings.TrimSuffix(name, ".app"),
				Source:     SourceApplications,
				BinaryPath: path,
				SizeBytes:  DirSize(path),
			})
		}
	}

	return packages, nil
}
