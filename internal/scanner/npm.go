package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// NpmLister scans npm's global package tree.
type NpmLister struct{}

type npmListOutput struct {
	Dependencies map[string]npmDependency `json:"dependencies"`
}

type npmDependency struct {
	Version string `json:"version"`
}

func (l *NpmLister) Source() Source { return SourceNpm }

func (l *NpmLister) Available() bool {
	_, err := exec.LookPath("npm")
	return err == nil
}

// Scan lists globally installed npm packages. npm exits non-zero for
// warnings, so the JSON is parsed from whatever stdout was produced.
func (l *NpmLister) Scan() ([]*Package, error) {
	out, _ := exec.Command("npm", "list", "-g", "--depth=0", "--json").Output()
	if len(out) == 0 {
		return nil, fmt.Errorf("npm list produced no output")
	}

	var list npmListOutput
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("failed to parse npm list output: %w", err)
	}

	prefix := npmPrefix()

	// Map iteration order is unspecified; sort names so scan output and
	// everything derived from it is deterministic.
	names := make([]string, 0, len(list.Dependencies))
	for name := range list.Dependencies {
		if name == "npm" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var packages []*Package
	for _, name := range names {
		pkg := &Package{
			Name:    name,
			Version: list.Dependencies[name].Version,
			Source:  SourceNpm,
		}

		if prefix != "" {
			bin := filepath.Join(prefix, "bin", name)
			if _, err := os.Stat(bin); err == nil {
				pkg.BinaryPath = bin
			}
			pkg.SizeBytes = DirSize(filepath.Join(prefix, "lib", "node_modules", name))
		}

		packages = append(packages, pkg)
	}

	return packages, nil
}

func npmPrefix() string {
	out, err := exec.Command("npm", "prefix", "-g").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
