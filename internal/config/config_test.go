package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSchema = `
backend_url?:     string
request_timeout?: string
poll_interval?:   string
default_map?:     string
maps?: [...{
	id:     string
	label?: string
}]
`

func writeTestFiles(t *testing.T, yaml string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dashboard.yaml")
	schemaPath := filepath.Join(dir, "dashboard.cue")
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(schemaPath, []byte(testSchema), 0644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return cfgPath, schemaPath
}

func TestLoadConfig_Valid(t *testing.T) {
	yaml := `
backend_url: http://sim.local:8001
request_timeout: 2s
poll_interval: 100ms
default_map: bangalore
maps:
  - id: intersection
    label: Simple Intersection
  - id: bangalore
    label: Bangalore Silk Junction
`
	cfgPath, schemaPath := writeTestFiles(t, yaml)
	cfg, err := Load(cfgPath, schemaPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.BackendURL != "http://sim.local:8001" {
		t.Errorf("unexpected backend url: %s", cfg.BackendURL)
	}
	if cfg.PollInterval.Std() != 100*time.Millisecond {
		t.Errorf("unexpected poll interval: %s", cfg.PollInterval.Std())
	}
	if cfg.RequestTimeout.Std() != 2*time.Second {
		t.Errorf("unexpected request timeout: %s", cfg.RequestTimeout.Std())
	}
	if cfg.DefaultMap != "bangalore" || len(cfg.Maps) != 2 {
		t.Errorf("unexpected maps: %+v", cfg)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfgPath, schemaPath := writeTestFiles(t, "backend_url: http://localhost:8001\n")
	cfg, err := Load(cfgPath, schemaPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.PollInterval.Std() != 50*time.Millisecond {
		t.Errorf("default poll interval = %s, want 50ms", cfg.PollInterval.Std())
	}
	if cfg.DefaultMap != "intersection" || len(cfg.Maps) != 2 {
		t.Errorf("default maps not applied: %+v", cfg)
	}
	if !cfg.HasMap("bangalore") {
		t.Errorf("expected bangalore in default maps")
	}
}

func TestLoadConfig_DefaultMapMustExist(t *testing.T) {
	yaml := `
default_map: nowhere
maps:
  - id: intersection
`
	cfgPath, schemaPath := writeTestFiles(t, yaml)
	if _, err := Load(cfgPath, schemaPath); err == nil {
		t.Fatalf("expected error for unknown default_map")
	}
}

func TestLoadConfig_SchemaRejectsBadTypes(t *testing.T) {
	yaml := `
maps:
  - id: 42
`
	cfgPath, schemaPath := writeTestFiles(t, yaml)
	if _, err := Load(cfgPath, schemaPath); err == nil {
		t.Fatalf("expected schema validation error")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TRAFFIC_BACKEND_URL", "http://override:9000")
	t.Setenv("POLL_INTERVAL", "10ms")
	cfgPath, schemaPath := writeTestFiles(t, "backend_url: http://localhost:8001\n")
	cfg, err := Load(cfgPath, schemaPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.BackendURL != "http://override:9000" {
		t.Errorf("env override not applied: %s", cfg.BackendURL)
	}
	if cfg.PollInterval.Std() != 10*time.Millisecond {
		t.Errorf("poll interval override not applied: %s", cfg.PollInterval.Std())
	}
}
