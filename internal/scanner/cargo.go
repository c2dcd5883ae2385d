package scanner

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
)

// CargoLister scans binaries installed with `cargo install`.
type CargoLister struct{}

// cargoInstallRE matches crate header lines such as "ripgrep v14.1.0:".
var cargoInstallRE = regexp.MustCompile(`^(\S+) v([0-9][^ :]*):`)

func (l *CargoLister) Source() Source { return SourceCargo }

func (l *CargoLister) Available() bool {
	_, err := exec.LookPath("cargo")
	return err == nil
}

func (l *CargoLister) Scan() ([]*Package, error) {
	out, err := exec.Command("cargo", "install", "--list").Output()
	if err != nil {
		return nil, fmt.Errorf("cargo install --list failed: %w", err)
	}

	home, err := homeDir()
	if err != nil {
		home = ""
	}

	var packages []*Package
	for _, line := range splitLines(string(out)) {
		m := cargoInstallRE.FindStringSubmatch(line)
		if m == nil {
			// Indented lines list the crate's binaries; skip them.
			continue
		}

		pkg := &Package{
			Name:    m[1],
			Version: m[2],
			Source:  SourceCargo,
		}

		if home != "" {
			bin := filepath.Join(home, ".cargo", "bin", pkg.Name)
			if _, err := os.Stat(bin); err == nil {
				pkg.BinaryPath = bin
				pkg.SizeBytes = fileSize(bin)
			}
		}

		packages = append(packages, pkg)
	}

	return packages, nil
}
