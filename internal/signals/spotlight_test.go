package signals

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseSpotlightTime(t *testing.T) {
	out := "kMDItemLastUsedDate = 2026-01-18 21:35:48 +0000\nkMDItemUseCount     = 1033\n"

	ts := parseSpotlightTime(out)
	if ts == nil {
		t.Fatal("expected a timestamp")
	}

	want := time.Date(2026, 1, 18, 21, 35, 48, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("expected %v, got %v", want, ts)
	}
}

func TestParseSpotlightTimeNull(t *testing.T) {
	out := "kMDItemLastUsedDate = (null)\nkMDItemUseCount     = (null)\n"

	if ts := parseSpotlightTime(out); ts != nil {
		t.Errorf("expected nil for (null) attribute, got %v", ts)
	}
	if n := parseSpotlightCount(out); n != nil {
		t.Errorf("expected nil count for (null) attribute, got %d", *n)
	}
}

func TestParseSpotlightCount(t *testing.T) {
	// The date line's digits must not be mistaken for the use count.
	out := "kMDItemLastUsedDate = 2026-01-18 21:35:48 +0000\nkMDItemUseCount     = 42\n"

	n := parseSpotlightCount(out)
	if n == nil {
		t.Fatal("expected a count")
	}
	if *n != 42 {
		t.Errorf("expected count 42, got %d", *n)
	}
}

func TestParseSpotlightCountOnly(t *testing.T) {
	out := "kMDItemLastUsedDate = (null)\nkMDItemUseCount     = 7\n"

	if ts := parseSpotlightTime(out); ts != nil {
		t.Errorf("expected nil timestamp, got %v", ts)
	}
	n := parseSpotlightCount(out)
	if n == nil || *n != 7 {
		t.Errorf("expected count 7, got %v", n)
	}
}

func TestAccessTimeMissingPath(t *testing.T) {
	c := NewCollector(0)
	if at := c.AccessTime(filepath.Join(t.TempDir(), "nope")); at != nil {
		t.Errorf("expected nil atime for missing path, got %v", at)
	}
}

func TestModTime(t *testing.T) {
	c := NewCollector(0)

	path := filepath.Join(t.TempDir(), "bin")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	mt := c.ModTime(path)
	if mt == nil {
		t.Fatal("expected a mtime")
	}
	if time.Since(*mt) > time.Minute {
		t.Errorf("mtime suspiciously old: %v", mt)
	}

	if mt := c.ModTime(filepath.Join(t.TempDir(), "nope")); mt != nil {
		t.Errorf("expected nil mtime for missing path, got %v", mt)
	}
}
