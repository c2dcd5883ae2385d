package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// HomebrewLister scans Homebrew formulae; casks are produced by the same
// brew call but carry SourceHomebrewCask so they are tracked as bundles.
type HomebrewLister struct{}

// brewInfoOutput is the shape of `brew info --json=v2 --installed`.
type brewInfoOutput struct {
	Formulae []brewFormula `json:"formulae"`
	Casks    []brewCask    `json:"casks"`
}

type brewFormula struct {
	Name      string               `json:"name"`
	Tap       string               `json:"tap"`
	Installed []brewInstalledEntry `json:"installed"`
}

type brewInstalledEntry struct {
	Version               string `json:"version"`
	Time                  int64  `json:"time"`
	InstalledAsDependency bool   `json:"installed_as_dependency"`
}

type brewCask struct {
	Token   string `json:"token"`
	Tap     string `json:"tap"`
	Version string `json:"version"`
}

func (l *HomebrewLister) Source() Source { return SourceHomebrew }

func (l *HomebrewLister) Available() bool {
	_, err := exec.LookPath("brew")
	return err == nil
}

// Scan lists installed formulae and casks via brew's JSON interface.
func (l *HomebrewLister) Scan() ([]*Package, error) {
	out, err := exec.Command("brew", "info", "--json=v2", "--installed").Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("brew info failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("brew info failed: %w", err)
	}

	var info brewInfoOutput
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("failed to parse brew info output: %w", err)
	}

	prefix := brewPrefix()

	var packages []*Package
	for _, formula := range info.Formulae {
		pkg := &Package{
			Name:   formula.Name,
			Source: SourceHomebrew,
		}
		if len(formula.Installed) > 0 {
			inst := formula.Installed[0]
			pkg.Version = inst.Version
			pkg.IsDependency = inst.InstalledAsDependency
			if inst.Time > 0 {
				t := time.Unix(inst.Time, 0).UTC()
				pkg.InstallDate = &t
			}
		}

		if prefix != "" {
			bin := filepath.Join(prefix, "bin", formula.Name)
			if _, err := os.Stat(bin); err == nil {
				pkg.BinaryPath = bin
			}
			pkg.SizeBytes = DirSize(filepath.Join(prefix, "Cellar", formula.Name))
		}

		packages = append(packages, pkg)
	}

	for _, cask := range info.Casks {
		pkg := &Package{
			Name:    cask.Token,
			Version: cask.Version,
			Source:  SourceHomebrewCask,
		}

		// Casks install app bundles under /Applications; Spotlight tracks
		// usage against the bundle path.
		if app := findAppBundle(cask.Token); app != "" {
			pkg.BinaryPath = app
			pkg.SizeBytes = DirSize(app)
		}

		packages = append(packages, pkg)
	}

	return packages, nil
}

// brewPrefix returns the Homebrew installation prefix, or "" when brew
// cannot report one.
func brewPrefix() string {
	out, err := exec.Command("brew", "--prefix").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// findAppBundle looks for an installed .app matching a cask token, trying
// the token verbatim and a title-cased, dash-to-space variant.
func findAppBundle(token string) string {
	candidates := []string{
		token,
		titleWords(strings.ReplaceAll(token, "-", " ")),
	}
	for _, name := range candidates {
		path := filepath.Join("/Applications", name+".app")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// titleWords upper-cases the first letter of each space-separated word,
// e.g. "visual studio code" -> "Visual Studio Code".
func titleWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
