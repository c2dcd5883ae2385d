package cleanup

import (
	"fmt"
	"os/exec"

	"github.com/blackwell-systems/macsweep/internal/scanner"
)

// Executor removes packages via their native package managers. With DryRun
// set it only reports what would run.
type Executor struct {
	DryRun bool
}

// Remove uninstalls one package. The returned description names the command
// that ran (or would run under dry-run).
func (e *Executor) Remove(pkg *scanner.Package) (string, error) {
	argv, err := removeCommand(pkg)
	if err != nil {
		return "", err
	}

	desc := describe(argv)
	if e.DryRun {
		return desc, nil
	}

	if err := run(argv); err != nil {
		return desc, fmt.Errorf("failed to remove %s: %w", pkg.Name, err)
	}
	return desc, nil
}

// removeCommand maps a package's source to its uninstall invocation.
func removeCommand(pkg *scanner.Package) ([]string, error) {
	switch pkg.Source {
	case scanner.SourceHomebrew:
		return []string{"brew", "uninstall", pkg.Name}, nil
	case scanner.SourceHomebrewCask:
		return []string{"brew", "uninstall", "--cask", pkg.Name}, nil
	case scanner.SourceNpm:
		return []string{"npm", "uninstall", "-g", pkg.Name}, nil
	case scanner.SourcePip:
		return []string{"pip3", "uninstall", "-y", pkg.Name}, nil
	case scanner.SourcePipx:
		return []string{"pipx", "uninstall", pkg.Name}, nil
	case scanner.SourceCargo:
		return []string{"cargo", "uninstall", pkg.Name}, nil
	case scanner.SourceGem:
		return []string{"gem", "uninstall", "-x", pkg.Name}, nil
	case scanner.SourceApplications:
		if pkg.BinaryPath == "" {
			return nil, fmt.Errorf("no bundle path recorded for %s", pkg.Name)
		}
		// Finder moves the bundle to the Trash, so the removal is
		// recoverable without any extra backup machinery.
		script := fmt.Sprintf(`tell application "Finder" to delete POSIX file %q`, pkg.BinaryPath)
		return []string{"osascript", "-e", script}, nil
	default:
		return nil, fmt.Errorf("unsupported source %q for %s", pkg.Source, pkg.Name)
	}
}

func describe(argv []string) string {
	desc := argv[0]
	for _, arg := range argv[1:] {
		desc += " " + arg
	}
	return desc
}

func run(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (output: %s)", argv[0], err, string(out))
	}
	return nil
}
