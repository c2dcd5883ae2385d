package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/macsweep/internal/scanner"
)

// Package operations

// UpsertPackage inserts or replaces a package row. The last_seen column is
// set to now so stale rows from removed packages can be identified.
func (s *Store) UpsertPackage(pkg *scanner.Package) error {
	query := `
		INSERT OR REPLACE INTO packages
		(name, source, version, install_date, size_bytes, binary_path, is_dependency, last_used, usage_count, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		pkg.Name,
		string(pkg.Source),
		pkg.Version,
		formatNullableTime(pkg.InstallDate),
		pkg.SizeBytes,
		pkg.BinaryPath,
		pkg.IsDependency,
		formatNullableTime(pkg.LastUsed),
		pkg.UsageCount,
		time.Now().UTC().Format(time.RFC3339),
	)

	if err != nil {
		return fmt.Errorf("failed to upsert package %s: %w", pkg.Name, err)
	}

	return nil
}

// GetPackage retrieves a package by name and source.
func (s *Store) GetPackage(name string, source scanner.Source) (*scanner.Package, error) {
	query := `
		SELECT name, source, version, install_date, size_bytes, binary_path, is_dependency, last_used, usage_count
		FROM packages
		WHERE name = ? AND source = ?
	`

	pkg, err := scanPackageRow(s.db.QueryRow(query, name, string(source)))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("package %s (%s) not found", name, source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package %s: %w", name, err)
	}

	return pkg, nil
}

// ListPackages returns all stored packages ordered by source then name.
func (s *Store) ListPackages() ([]*scanner.Package, error) {
	query := `
		SELECT name, source, version, install_date, size_bytes, binary_path, is_dependency, last_used, usage_count
		FROM packages
		ORDER BY source, name
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []*scanner.Package
	for rows.Next() {
		pkg, err := scanPackageRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating packages: %w", err)
	}

	return packages, nil
}

// ListPackagesBySource returns stored packages from one source, ordered by name.
func (s *Store) ListPackagesBySource(source scanner.Source) ([]*scanner.Package, error) {
	query := `
		SELECT name, source, version, install_date, size_bytes, binary_path, is_dependency, last_used, usage_count
		FROM packages
		WHERE source = ?
		ORDER BY name
	`

	rows, err := s.db.Query(query, string(source))
	if err != nil {
		return nil, fmt.Errorf("failed to list packages for %s: %w", source, err)
	}
	defer rows.Close()

	var packages []*scanner.Package
	for rows.Next() {
		pkg, err := scanPackageRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating packages: %w", err)
	}

	return packages, nil
}

// UpdateUsage sets the usage estimate columns for an existing package row.
func (s *Store) UpdateUsage(name string, source scanner.Source, lastUsed *time.Time, count int) error {
	query := `
		UPDATE packages
		SET last_used = ?, usage_count = ?
		WHERE name = ? AND source = ?
	`

	result, err := s.db.Exec(query, formatNullableTime(lastUsed), count, name, string(source))
	if err != nil {
		return fmt.Errorf("failed to update usage for %s: %w", name, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("package %s (%s) not found", name, source)
	}

	return nil
}

// DeletePackage removes a package row.
func (s *Store) DeletePackage(name string, source scanner.Source) error {
	result, err := s.db.Exec(`DELETE FROM packages WHERE name = ? AND source = ?`, name, string(source))
	if err != nil {
		return fmt.Errorf("failed to delete package %s: %w", name, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("package %s (%s) not found", name, source)
	}

	return nil
}

// PruneNotSeenSince deletes rows whose last_seen predates cutoff. Used after
// a full scan to drop packages that were uninstalled out of band.
func (s *Store) PruneNotSeenSince(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM packages WHERE last_seen < ?`,
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune stale packages: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// Scan history operations

// RecordScan appends a scan record and returns its ID.
func (s *Store) RecordScan(scanType string, pkgCount int, duration time.Duration) (int64, error) {
	query := `
		INSERT INTO scans (scan_type, package_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		scanType,
		pkgCount,
		duration.Milliseconds(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record scan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get scan ID: %w", err)
	}

	return id, nil
}

// LastScan returns the most recent scan record, or nil when none exist.
func (s *Store) LastScan() (*Scan, error) {
	query := `
		SELECT id, scan_type, package_count, duration_ms, created_at
		FROM scans
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var scan Scan
	var createdAt string

	err := s.db.QueryRow(query).Scan(
		&scan.ID,
		&scan.ScanType,
		&scan.PackageCount,
		&scan.DurationMS,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last scan: %w", err)
	}

	scan.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for scan %d: %w", scan.ID, err)
	}

	return &scan, nil
}

// CountPackages returns the number of stored package rows.
func (s *Store) CountPackages() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM packages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count packages: %w", err)
	}
	return count, nil
}

// TotalSizeBytes returns the summed size of all stored packages.
func (s *Store) TotalSizeBytes() (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRow("SELECT SUM(size_bytes) FROM packages").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum package sizes: %w", err)
	}
	return total.Int64, nil
}

// rowScanner lets scanPackageRow serve both QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackageRow(row rowScanner) (*scanner.Package, error) {
	var pkg scanner.Package
	var source string
	var installDate, lastUsed sql.NullString

	err := row.Scan(
		&pkg.Name,
		&source,
		&pkg.Version,
		&installDate,
		&pkg.SizeBytes,
		&pkg.BinaryPath,
		&pkg.IsDependency,
		&lastUsed,
		&pkg.UsageCount,
	)
	if err != nil {
		return nil, err
	}

	pkg.Source = scanner.Source(source)

	if pkg.InstallDate, err = parseNullableTime(installDate); err != nil {
		return nil, fmt.Errorf("failed to parse install_date for %s: %w", pkg.Name, err)
	}
	if pkg.LastUsed, err = parseNullableTime(lastUsed); err != nil {
		return nil, fmt.Errorf("failed to parse last_used for %s: %w", pkg.Name, err)
	}

	return &pkg, nil
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
