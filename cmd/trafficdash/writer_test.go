package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"trafficdash/internal/record"
)

func TestNewWritersPrintOnly(t *testing.T) {
	steps, benches, cleanup, err := newWriters(true, false, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := steps.(*record.ColorStdoutWriter); !ok {
		t.Fatalf("expected *record.ColorStdoutWriter, got %T", steps)
	}
	if _, ok := benches.(*record.ColorStdoutWriter); !ok {
		t.Fatalf("expected *record.ColorStdoutWriter, got %T", benches)
	}
}

func TestNewWritersJSONOutput(t *testing.T) {
	steps, benches, cleanup, err := newWriters(false, true, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := steps.(*record.StdoutWriter); !ok {
		t.Fatalf("expected *record.StdoutWriter, got %T", steps)
	}
	if _, ok := benches.(*record.StdoutWriter); !ok {
		t.Fatalf("expected benchmark writer *record.StdoutWriter, got %T", benches)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	steps, _, cleanup, err := newWriters(false, false, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := steps.(*record.ColorStdoutWriter); !ok {
		t.Fatalf("expected *record.ColorStdoutWriter, got %T", steps)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "steps.log")
	steps, benches, cleanup, err := newWriters(true, false, path)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := steps.(*record.MultiWriter); !ok {
		t.Fatalf("expected *record.MultiWriter, got %T", steps)
	}
	if _, ok := benches.(*record.MultiWriter); !ok {
		t.Fatalf("expected benchmark writer *record.MultiWriter, got %T", benches)
	}
	row := record.StepRow{SessionID: "s1", MapID: "intersection", Timestamp: time.Now()}
	if err := steps.WriteStep(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to be non-empty")
	}
}

func TestNewSinkWritersEmpty(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	steps, benches, cleanup, err := newSinkWriters("")
	if err != nil {
		t.Fatalf("newSinkWriters returned error: %v", err)
	}
	cleanup()
	if steps != nil || benches != nil {
		t.Fatalf("expected nil writers without sinks, got %T/%T", steps, benches)
	}
}

func TestNewSinkWritersLogFile(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "steps.log")
	steps, benches, cleanup, err := newSinkWriters(path)
	if err != nil {
		t.Fatalf("newSinkWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := steps.(*record.FileWriter); !ok {
		t.Fatalf("expected *record.FileWriter, got %T", steps)
	}
	if _, ok := benches.(*record.FileWriter); !ok {
		t.Fatalf("expected benchmark writer *record.FileWriter, got %T", benches)
	}
}
