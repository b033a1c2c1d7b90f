package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/flapper/internal/storage"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Cleanup(func() { flagLogLevel, flagLogFile = "info", "" })

	flagLogLevel = "loud"
	if _, _, err := newLogger(&bytes.Buffer{}, "test"); err == nil {
		t.Error("expected an error for an unknown level")
	}

	var buf bytes.Buffer
	flagLogLevel = "warn"
	logger, release, err := newLogger(&buf, "test")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer release()

	logger.Info("hidden")
	logger.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestNewLoggerFile(t *testing.T) {
	t.Cleanup(func() { flagLogLevel, flagLogFile = "info", "" })

	flagLogLevel = "debug"
	flagLogFile = filepath.Join(t.TempDir(), "flapper.log")

	var fallback bytes.Buffer
	logger, release, err := newLogger(&fallback, "test")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	logger.Debug("round ended", "reason", "boundary")
	release()

	data, err := os.ReadFile(flagLogFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "round ended") {
		t.Errorf("log file should contain the entry, got %q", data)
	}
	if fallback.Len() != 0 {
		t.Error("nothing should be written to the fallback writer")
	}
}

func TestRoundsTable(t *testing.T) {
	out := roundsTable([]storage.RoundRecord{
		{ID: 7, Host: "ssh:alice", Reason: "collision", Duration: 3.3, Spawned: 2, CreatedAt: time.Now()},
	}).String()

	for _, want := range []string{"Host", "ssh:alice", "collision", "3.3s", "7"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q:\n%s", want, out)
		}
	}
}

func TestWriteConfig(t *testing.T) {
	t.Cleanup(func() { flagConfig = "" })

	var defaults bytes.Buffer
	if err := writeConfig(&defaults, true); err != nil {
		t.Fatalf("writeConfig(defaults) error = %v", err)
	}
	if !strings.HasPrefix(defaults.String(), "# Default flapper configuration") {
		t.Errorf("defaults should be printed as shipped, got %q", defaults.String())
	}

	custom := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := os.WriteFile(custom, []byte("physics:\n  gravity: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	flagConfig = custom

	var effective bytes.Buffer
	if err := writeConfig(&effective, false); err != nil {
		t.Fatalf("writeConfig() error = %v", err)
	}
	if !strings.Contains(effective.String(), "gravity: 500") {
		t.Errorf("effective config should carry the override, got:\n%s", effective.String())
	}
}
