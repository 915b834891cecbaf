package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLogFile(t *testing.T) {
	dir := t.TempDir()

	f, err := SetupLogFile(dir, 10)
	if err != nil {
		t.Fatalf("SetupLogFile failed: %v", err)
	}
	defer f.Close()

	base := filepath.Base(f.Name())
	if !strings.HasPrefix(base, "instruks-") || !strings.HasSuffix(base, ".log") {
		t.Errorf("unexpected log file name: %q", base)
	}
	if _, err := os.Stat(f.Name()); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestSetupLogFile_PrunesOldest(t *testing.T) {
	dir := t.TempDir()

	stale := []string{
		"instruks-2020-01-01T00-00-00.log",
		"instruks-2020-01-02T00-00-00.log",
		"instruks-2020-01-03T00-00-00.log",
	}
	for _, name := range stale {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	f, err := SetupLogFile(dir, 2)
	if err != nil {
		t.Fatalf("SetupLogFile failed: %v", err)
	}
	defer f.Close()

	remaining, err := filepath.Glob(filepath.Join(dir, "instruks-*.log"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 files after pruning, got %d: %v", len(remaining), remaining)
	}
	// The two oldest go; the current file always sorts last by timestamp.
	for _, name := range remaining {
		if filepath.Base(name) == stale[0] || filepath.Base(name) == stale[1] {
			t.Errorf("stale file survived pruning: %s", name)
		}
	}
}
