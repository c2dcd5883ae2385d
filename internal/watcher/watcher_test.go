package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blackwell-systems/macsweep/internal/history"
)

func TestNewValidation(t *testing.T) {
	logs := []history.Log{{Path: "/tmp/x", Format: history.FormatZsh}}

	if _, err := New(nil, func() error { return nil }); err == nil {
		t.Error("expected error for empty log list")
	}
	if _, err := New(logs, nil); err == nil {
		t.Error("expected error for nil refresh callback")
	}
	if _, err := New(logs, func() error { return nil }); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWatcherRefreshOnWrite(t *testing.T) {
	dir := t.TempDir()
	histPath := filepath.Join(dir, ".zsh_history")
	if err := os.WriteFile(histPath, []byte(": 1000:0;ls\n"), 0644); err != nil {
		t.Fatalf("failed to seed history file: %v", err)
	}

	var refreshes int32
	w, err := New(
		[]history.Log{{Path: histPath, Format: history.FormatZsh}},
		func() error {
			atomic.AddInt32(&refreshes, 1)
			return nil
		},
	)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	w.debounce = 50 * time.Millisecond

	if err := w.Start(); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer w.Stop()

	// Start runs one refresh up front.
	if got := atomic.LoadInt32(&refreshes); got != 1 {
		t.Fatalf("expected initial refresh, got %d", got)
	}

	// Two quick appends should debounce into one refresh.
	f, err := os.OpenFile(histPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("failed to open history file: %v", err)
	}
	fmt.Fprintln(f, ": 2000:0;git status")
	fmt.Fprintln(f, ": 2001:0;git push")
	f.Close()

	deadline := time.Now().Add(3 * time.Second)
	for atomic.LoadInt32(&refreshes) < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("refresh not triggered, count=%d", atomic.LoadInt32(&refreshes))
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	histPath := filepath.Join(dir, ".zsh_history")
	if err := os.WriteFile(histPath, nil, 0644); err != nil {
		t.Fatalf("failed to seed history file: %v", err)
	}

	var refreshes int32
	w, err := New(
		[]history.Log{{Path: histPath, Format: history.FormatZsh}},
		func() error {
			atomic.AddInt32(&refreshes, 1)
			return nil
		},
	)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	w.debounce = 50 * time.Millisecond

	if err := w.Start(); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer w.Stop()

	// Writes to an unrelated file in the same directory must not refresh.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write unrelated file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := atomic.LoadInt32(&refreshes); got != 1 {
		t.Errorf("expected only the initial refresh, got %d", got)
	}
}

func TestIsDaemonRunning(t *testing.T) {
	dir := t.TempDir()

	// No PID file means not running.
	running, err := IsDaemonRunning(filepath.Join(dir, "absent.pid"))
	if err != nil || running {
		t.Errorf("expected not running, got %v, %v", running, err)
	}

	// Garbage PID file means not running, without error.
	garbage := filepath.Join(dir, "garbage.pid")
	os.WriteFile(garbage, []byte("not-a-pid\n"), 0644)
	running, err = IsDaemonRunning(garbage)
	if err != nil || running {
		t.Errorf("expected not running for garbage pid, got %v, %v", running, err)
	}

	// Our own PID is definitely alive.
	own := filepath.Join(dir, "own.pid")
	os.WriteFile(own, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
	running, err = IsDaemonRunning(own)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !running {
		t.Error("expected own PID to be reported running")
	}
}

func TestStopDaemonMissingPIDFile(t *testing.T) {
	if err := StopDaemon(filepath.Join(t.TempDir(), "absent.pid")); err == nil {
		t.Error("expected error when PID file is missing")
	}
}
