package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderGrafanaMissingEnv(t *testing.T) {
	// t.Setenv registers restoration of the original value; the Unsetenv
	// then simulates the variable being absent for this test only.
	t.Setenv("GREPTIMEDB_DATASOURCE_UID", "")
	os.Unsetenv("GREPTIMEDB_DATASOURCE_UID")
	if err := RenderGrafana(t.TempDir()); err == nil {
		t.Fatalf("expected error for missing env vars")
	}
}

func TestRenderGrafanaSuccess(t *testing.T) {
	t.Setenv("GREPTIMEDB_DATASOURCE_UID", "uid1")

	dir := t.TempDir()
	if err := RenderGrafana(dir); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "grafana-dashboard.json"))
	if err != nil {
		t.Fatalf("read dashboard: %v", err)
	}
	if !strings.Contains(string(b), "uid1") {
		t.Fatalf("datasource uid not rendered")
	}
	if !strings.Contains(string(b), "traffic_steps") {
		t.Fatalf("step table not referenced")
	}
}
