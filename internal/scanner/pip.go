package scanner

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// PipLister scans packages installed with pip3.
type PipLister struct{}

type pipPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (l *PipLister) Source() Source { return SourcePip }

func (l *PipLister) Available() bool {
	_, err := exec.LookPath("pip3")
	return err == nil
}

func (l *PipLister) Scan() ([]*Package, error) {
	out, err := exec.Command("pip3", "list", "--format=json").Output()
	if err != nil {
		return nil, fmt.Errorf("pip3 list failed: %w", err)
	}

	var listed []pipPackage
	if err := json.Unmarshal(out, &listed); err != nil {
		return nil, fmt.Errorf("failed to parse pip list output: %w", err)
	}

	var packages []*Package
	for _, p := range listed {
		pkg := &Package{
			Name:    p.Name,
			Version: p.Version,
			Source:  SourcePip,
		}

		// Console scripts usually share the distribution name; anything
		// else is a false negative the history heuristic already accepts.
		if path, err := exec.LookPath(strings.ToLower(p.Name)); err == nil {
			pkg.BinaryPath = path
			pkg.SizeBytes = fileSize(path)
		}

		packages = append(packages, pkg)
	}

	return packages, nil
}

// PipxLister scans standalone tools installed with pipx.
type PipxLister struct{}

func (l *PipxLister) Source() Source { return SourcePipx }

func (l *PipxLister) Available() bool {
	_, err := exec.LookPath("pipx")
	return err == nil
}

// Scan parses `pipx list --short`, which prints one "name version" pair
// per line.
func (l *PipxLister) Scan() ([]*Package, error) {
	out, err := exec.Command("pipx", "list", "--short").Output()
	if err != nil {
		return nil, fmt.Errorf("pipx list failed: %w", err)
	}

	var packages []*Package
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		pkg := &Package{
			Name:   fields[0],
			Source: SourcePipx,
		}
		if len(fields) > 1 {
			pkg.Version = fields[1]
		}

		if path, err := exec.LookPath(pkg.Name); err == nil {
			pkg.BinaryPath = path
			pkg.SizeBytes = fileSize(path)
		}
		if home, err := homeDir(); err == nil {
			venv := filepath.Join(home, ".local", "pipx", "venvs", pkg.Name)
			if size := DirSize(venv); size > 0 {
				pkg.SizeBytes = size
			}
		}

		packages = append(packages, pkg)
	}

	return packages, nil
}
