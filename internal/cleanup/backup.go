// Package cleanup creates backup manifests and removes packages through
// their native package managers.
package cleanup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/macsweep/internal/scanner"
)

// Manifest records what a cleanup run removed, with enough detail to
// reinstall by hand. It is written before anything is uninstalled.
type Manifest struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	DryRun    bool              `json:"dry_run"`
	Packages  []ManifestPackage `json:"packages"`
}

// ManifestPackage is one removed item as it existed at removal time.
type ManifestPackage struct {
	Name      string     `json:"name"`
	Version   string     `json:"version,omitempty"`
	Source    string     `json:"source"`
	SizeBytes int64      `json:"size_bytes"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}

// TotalBytes sums the recorded sizes of the manifest's packages.
func (m *Manifest) TotalBytes() int64 {
	var total int64
	for _, p := range m.Packages {
		total += p.SizeBytes
	}
	return total
}

// newManifestID builds an identifier like cleanup_20260115-083000_1a2b3c4d,
// sortable by timestamp with a short random suffix for uniqueness.
func newManifestID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("cleanup_%s_%s", now.Format("20060102-150405"), suffix)
}

// CreateBackup writes a manifest for the given packages into dir and
// returns it. The manifest file is named <id>.json.
func CreateBackup(dir string, pkgs []*scanner.Package, dryRun bool) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := time.Now().UTC()
	manifest := &Manifest{
		ID:        newManifestID(now),
		CreatedAt: now,
		DryRun:    dryRun,
		Packages:  make([]ManifestPackage, 0, len(pkgs)),
	}

	for _, pkg := range pkgs {
		manifest.Packages = append(manifest.Packages, ManifestPackage{
			Name:      pkg.Name,
			Version:   pkg.Version,
			Source:    string(pkg.Source),
			SizeBytes: pkg.SizeBytes,
			LastUsed:  pkg.LastUsed,
		})
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(dir, manifest.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return manifest, nil
}

// LoadManifest reads a manifest by ID from dir.
func LoadManifest(dir, id string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, id+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", id, err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", id, err)
	}

	return &manifest, nil
}

// ListBackups returns all manifests in dir, newest first. A missing
// directory is treated as no backups.
func ListBackups(dir string) ([]*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var manifests []*Manifest
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		m, err := LoadManifest(dir, strings.TrimSuffix(name, ".json"))
		if err != nil {
			// Skip unreadable manifests rather than failing the listing.
			continue
		}
		manifests = append(manifests, m)
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].CreatedAt.After(manifests[j].CreatedAt)
	})
	return manifests, nil
}
