package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeHistory(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write history fixture: %v", err)
	}
	return path
}

func TestParseZsh(t *testing.T) {
	path := writeHistory(t, ".zsh_history", ": 1000:0;ls -la\n: 1100:0;git status\n")

	entries := ParseZsh(path)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Command != "ls -la" {
		t.Errorf("expected command %q, got %q", "ls -la", entries[0].Command)
	}
	if entries[1].Command != "git status" {
		t.Errorf("expected command %q, got %q", "git status", entries[1].Command)
	}

	for i, want := range []int64{1000, 1100} {
		ts := entries[i].Timestamp
		if ts == nil {
			t.Fatalf("entry %d: expected timestamp", i)
		}
		if ts.Unix() != want {
			t.Errorf("entry %d: expected epoch %d, got %d", i, want, ts.Unix())
		}
		if ts.Location() != time.UTC {
			t.Errorf("entry %d: timestamp not UTC", i)
		}
	}
}

func TestParseZshMultiline(t *testing.T) {
	path := writeHistory(t, ".zsh_history",
		": 1000:0;for f in *.txt; do\n  echo $f\ndone\n: 1100:0;pwd\n")

	entries := ParseZsh(path)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	want := "for f in *.txt; do\n  echo $f\ndone"
	if entries[0].Command != want {
		t.Errorf("expected multiline command %q, got %q", want, entries[0].Command)
	}
	if entries[1].Command != "pwd" {
		t.Errorf("expected %q, got %q", "pwd", entries[1].Command)
	}
}

func TestParseZshUnparsableEpoch(t *testing.T) {
	// 30 digits overflows int64; the entry survives without a timestamp.
	path := writeHistory(t, ".zsh_history", ": 999999999999999999999999999999:0;ls\n")

	entries := ParseZsh(path)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Timestamp != nil {
		t.Error("expected nil timestamp for unparsable epoch")
	}
	if entries[0].Command != "ls" {
		t.Errorf("expected command %q, got %q", "ls", entries[0].Command)
	}
}

func TestParseZshMissingFile(t *testing.T) {
	entries := ParseZsh(filepath.Join(t.TempDir(), "no_such_history"))
	if len(entries) != 0 {
		t.Errorf("expected empty result for missing file, got %d entries", len(entries))
	}
}

func TestParseBash(t *testing.T) {
	path := writeHistory(t, ".bash_history", "#1000\nls -la\ngit status\n#not-a-timestamp\n#2000\npwd\n")

	entries := ParseBash(path)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	// First plain line consumes the pending timestamp.
	if entries[0].Command != "ls -la" || entries[0].Timestamp == nil || entries[0].Timestamp.Unix() != 1000 {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}

	// The timestamp applies to exactly one line; the next is timestamp-less.
	if entries[1].Command != "git status" || entries[1].Timestamp != nil {
		t.Errorf("expected timestamp-less %q, got %+v", "git status", entries[1])
	}

	// A comment that is not an integer is kept as a command.
	if entries[2].Command != "#not-a-timestamp" {
		t.Errorf("expected comment preserved as command, got %q", entries[2].Command)
	}

	if entries[3].Command != "pwd" || entries[3].Timestamp == nil || entries[3].Timestamp.Unix() != 2000 {
		t.Errorf("unexpected last entry: %+v", entries[3])
	}
}

func TestParseFish(t *testing.T) {
	path := writeHistory(t, "fish_history",
		"- cmd: ls -la\n  when: 1234567890\n- cmd: git status\n  when: 1234567900\n- cmd: dangling\n")

	entries := ParseFish(path)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (unpaired cmd discarded), got %d", len(entries))
	}

	if entries[0].Command != "ls -la" || entries[0].Timestamp == nil || entries[0].Timestamp.Unix() != 1234567890 {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Command != "git status" {
		t.Errorf("expected %q, got %q", "git status", entries[1].Command)
	}
}

func TestParseFishBadEpoch(t *testing.T) {
	path := writeHistory(t, "fish_history", "- cmd: ls\n  when: soon\n")

	entries := ParseFish(path)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Timestamp != nil {
		t.Error("expected nil timestamp for unparsable when: value")
	}
}

func TestParseAllSortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	zsh := filepath.Join(dir, ".zsh_history")
	bash := filepath.Join(dir, ".bash_history")
	if err := os.WriteFile(zsh, []byte(": 1000:0;old\n: 3000:0;newest\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bash, []byte("#2000\nmiddle\nundated\n"), 0644); err != nil {
		t.Fatal(err)
	}

	entries := ParseAll([]Log{
		{Path: zsh, Format: FormatZsh},
		{Path: bash, Format: FormatBash},
	})

	if len(entries) != 4 {
		t.Fatalf("expected 4 merged entries, got %d", len(entries))
	}

	wantOrder := []string{"newest", "middle", "old", "undated"}
	for i, want := range wantOrder {
		if entries[i].Command != want {
			t.Errorf("position %d: expected %q, got %q", i, want, entries[i].Command)
		}
	}
}

func TestParseAllDeterministic(t *testing.T) {
	dir := t.TempDir()
	zsh := filepath.Join(dir, ".zsh_history")
	if err := os.WriteFile(zsh, []byte(": 1000:0;a\n: 1000:0;b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	logs := []Log{{Path: zsh, Format: FormatZsh}}
	first := ParseAll(logs)
	second := ParseAll(logs)

	if len(first) != len(second) {
		t.Fatalf("expected identical lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Command != second[i].Command {
			t.Errorf("position %d differs between runs: %q vs %q", i, first[i].Command, second[i].Command)
		}
	}
	// Equal timestamps keep file order (stable sort).
	if first[0].Command != "a" || first[1].Command != "b" {
		t.Errorf("expected stable order [a b], got [%s %s]", first[0].Command, first[1].Command)
	}
}
