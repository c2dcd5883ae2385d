package store

import (
	"testing"
	"time"

	"github.com/blackwell-systems/macsweep/internal/scanner"
)

// newTestStore creates an in-memory store with the schema applied.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return s
}

func testPackage(name string, source scanner.Source) *scanner.Package {
	installed := time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC)
	return &scanner.Package{
		Name:        name,
		Version:     "1.2.3",
		Source:      source,
		InstallDate: &installed,
		SizeBytes:   4096,
		BinaryPath:  "/opt/homebrew/bin/" + name,
	}
}

func TestUpsertAndGetPackage(t *testing.T) {
	s := newTestStore(t)

	pkg := testPackage("ripgrep", scanner.SourceHomebrew)
	if err := s.UpsertPackage(pkg); err != nil {
		t.Fatalf("failed to upsert package: %v", err)
	}

	got, err := s.GetPackage("ripgrep", scanner.SourceHomebrew)
	if err != nil {
		t.Fatalf("failed to get package: %v", err)
	}

	if got.Name != "ripgrep" || got.Version != "1.2.3" || got.Source != scanner.SourceHomebrew {
		t.Errorf("unexpected package: %+v", got)
	}
	if got.InstallDate == nil || !got.InstallDate.Equal(*pkg.InstallDate) {
		t.Errorf("install date mismatch: %v", got.InstallDate)
	}
	if got.SizeBytes != 4096 || got.BinaryPath != "/opt/homebrew/bin/ripgrep" {
		t.Errorf("unexpected package fields: %+v", got)
	}
	if got.LastUsed != nil || got.UsageCount != 0 {
		t.Errorf("fresh package should have no usage data: %+v", got)
	}
}

func TestGetPackageNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetPackage("ghost", scanner.SourceNpm); err == nil {
		t.Error("expected error for missing package")
	}
}

func TestSameNameDifferentSources(t *testing.T) {
	s := newTestStore(t)

	// "prettier" can exist both as an npm global and a brew formula.
	if err := s.UpsertPackage(testPackage("prettier", scanner.SourceNpm)); err != nil {
		t.Fatalf("failed to upsert npm package: %v", err)
	}
	if err := s.UpsertPackage(testPackage("prettier", scanner.SourceHomebrew)); err != nil {
		t.Fatalf("failed to upsert brew package: %v", err)
	}

	count, err := s.CountPackages()
	if err != nil {
		t.Fatalf("failed to count packages: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows for distinct sources, got %d", count)
	}
}

func TestUpsertReplaces(t *testing.T) {
	s := newTestStore(t)

	pkg := testPackage("jq", scanner.SourceHomebrew)
	if err := s.UpsertPackage(pkg); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	pkg.Version = "1.7.1"
	pkg.SizeBytes = 8192
	if err := s.UpsertPackage(pkg); err != nil {
		t.Fatalf("failed to re-upsert: %v", err)
	}

	got, err := s.GetPackage("jq", scanner.SourceHomebrew)
	if err != nil {
		t.Fatalf("failed to get package: %v", err)
	}
	if got.Version != "1.7.1" || got.SizeBytes != 8192 {
		t.Errorf("upsert did not replace fields: %+v", got)
	}

	count, _ := s.CountPackages()
	if count != 1 {
		t.Errorf("expected single row after re-upsert, got %d", count)
	}
}

func TestListPackagesOrder(t *testing.T) {
	s := newTestStore(t)

	for _, p := range []*scanner.Package{
		testPackage("zoxide", scanner.SourceHomebrew),
		testPackage("eslint", scanner.SourceNpm),
		testPackage("bat", scanner.SourceHomebrew),
	} {
		if err := s.UpsertPackage(p); err != nil {
			t.Fatalf("failed to upsert %s: %v", p.Name, err)
		}
	}

	pkgs, err := s.ListPackages()
	if err != nil {
		t.Fatalf("failed to list packages: %v", err)
	}

	var names []string
	for _, p := range pkgs {
		names = append(names, p.Name)
	}
	want := []string{"bat", "zoxide", "eslint"} // homebrew sorts before npm
	if len(names) != len(want) {
		t.Fatalf("expected %d packages, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestListPackagesBySource(t *testing.T) {
	s := newTestStore(t)

	s.UpsertPackage(testPackage("bat", scanner.SourceHomebrew))
	s.UpsertPackage(testPackage("eslint", scanner.SourceNpm))

	pkgs, err := s.ListPackagesBySource(scanner.SourceNpm)
	if err != nil {
		t.Fatalf("failed to list by source: %v", err)
	}
	if len(pkgs) != 1 || pkgs[0].Name != "eslint" {
		t.Errorf("unexpected result: %+v", pkgs)
	}
}

func TestUpdateUsage(t *testing.T) {
	s := newTestStore(t)

	if err := s.UpsertPackage(testPackage("git", scanner.SourceHomebrew)); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	used := time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)
	if err := s.UpdateUsage("git", scanner.SourceHomebrew, &used, 42); err != nil {
		t.Fatalf("failed to update usage: %v", err)
	}

	got, err := s.GetPackage("git", scanner.SourceHomebrew)
	if err != nil {
		t.Fatalf("failed to get package: %v", err)
	}
	if got.LastUsed == nil || !got.LastUsed.Equal(used) {
		t.Errorf("last_used mismatch: %v", got.LastUsed)
	}
	if got.UsageCount != 42 {
		t.Errorf("expected usage count 42, got %d", got.UsageCount)
	}

	// Clearing works too: nil timestamp, zero count.
	if err := s.UpdateUsage("git", scanner.SourceHomebrew, nil, 0); err != nil {
		t.Fatalf("failed to clear usage: %v", err)
	}
	got, _ = s.GetPackage("git", scanner.SourceHomebrew)
	if got.LastUsed != nil || got.UsageCount != 0 {
		t.Errorf("usage not cleared: %+v", got)
	}
}

func TestUpdateUsageMissingPackage(t *testing.T) {
	s := newTestStore(t)

	if err := s.UpdateUsage("ghost", scanner.SourceCargo, nil, 1); err == nil {
		t.Error("expected error updating usage for missing package")
	}
}

func TestDeletePackage(t *testing.T) {
	s := newTestStore(t)

	s.UpsertPackage(testPackage("bat", scanner.SourceHomebrew))

	if err := s.DeletePackage("bat", scanner.SourceHomebrew); err != nil {
		t.Fatalf("failed to delete package: %v", err)
	}
	if _, err := s.GetPackage("bat", scanner.SourceHomebrew); err == nil {
		t.Error("package still present after delete")
	}
	if err := s.DeletePackage("bat", scanner.SourceHomebrew); err == nil {
		t.Error("expected error deleting missing package")
	}
}

func TestPruneNotSeenSince(t *testing.T) {
	s := newTestStore(t)

	s.UpsertPackage(testPackage("bat", scanner.SourceHomebrew))

	// Everything was just upserted, so an old cutoff prunes nothing.
	pruned, err := s.PruneNotSeenSince(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("failed to prune: %v", err)
	}
	if pruned != 0 {
		t.Errorf("expected 0 pruned, got %d", pruned)
	}

	// A future cutoff prunes every row.
	pruned, err = s.PruneNotSeenSince(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("failed to prune: %v", err)
	}
	if pruned != 1 {
		t.Errorf("expected 1 pruned, got %d", pruned)
	}
}

func TestRecordAndLastScan(t *testing.T) {
	s := newTestStore(t)

	last, err := s.LastScan()
	if err != nil {
		t.Fatalf("failed to get last scan: %v", err)
	}
	if last != nil {
		t.Errorf("expected nil before any scan, got %+v", last)
	}

	if _, err := s.RecordScan("full", 120, 2500*time.Millisecond); err != nil {
		t.Fatalf("failed to record scan: %v", err)
	}
	id, err := s.RecordScan("usage", 120, 800*time.Millisecond)
	if err != nil {
		t.Fatalf("failed to record scan: %v", err)
	}

	last, err = s.LastScan()
	if err != nil {
		t.Fatalf("failed to get last scan: %v", err)
	}
	if last == nil {
		t.Fatal("expected a scan record")
	}
	if last.ID != id || last.ScanType != "usage" || last.PackageCount != 120 {
		t.Errorf("unexpected last scan: %+v", last)
	}
	if last.DurationMS != 800 {
		t.Errorf("expected 800ms, got %d", last.DurationMS)
	}
	if last.CreatedAt.IsZero() {
		t.Error("created_at not round-tripped")
	}
}

func TestTotalSizeBytes(t *testing.T) {
	s := newTestStore(t)

	// Empty table sums to zero, not an error.
	total, err := s.TotalSizeBytes()
	if err != nil {
		t.Fatalf("failed to sum sizes: %v", err)
	}
	if total != 0 {
		t.Errorf("expected 0 for empty table, got %d", total)
	}

	s.UpsertPackage(testPackage("bat", scanner.SourceHomebrew))
	s.UpsertPackage(testPackage("eslint", scanner.SourceNpm))

	total, err = s.TotalSizeBytes()
	if err != nil {
		t.Fatalf("failed to sum sizes: %v", err)
	}
	if total != 8192 {
		t.Errorf("expected 8192, got %d", total)
	}
}
