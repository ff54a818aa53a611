package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `logging:
  level: debug
  pretty: true
store:
  backend: sqlite
  path: /tmp/plan.db
metrics:
  textfile: /tmp/eventplan.prom
simulation:
  step_minutes: 5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.pretty", cfg.Logging.Pretty, true},
		{"store.backend", cfg.Store.Backend, StoreSQLite},
		{"store.path", cfg.Store.Path, "/tmp/plan.db"},
		{"metrics.textfile", cfg.Metrics.Textfile, "/tmp/eventplan.prom"},
		{"metrics.enabled", cfg.Metrics.Enabled(), true},
		{"simulation.step", cfg.Simulation.Step(), 5 * time.Minute},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadJSONDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{"store":{"backend":"sqlite"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Store.Path != "eventplan.db" {
		t.Fatalf("expected sqlite default path, got %s", cfg.Store.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected info level, got %s", cfg.Logging.Level)
	}
	if cfg.Simulation.StepMinutes != 15 {
		t.Fatalf("expected default step, got %v", cfg.Simulation.StepMinutes)
	}
}

func TestLoadEmptyPathUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("EVENTPLAN_STORE__PATH", "/var/lib/eventplan/slot.json")
	t.Setenv("EVENTPLAN_SIMULATION__STEP_MINUTES", "30")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Store.Backend != StoreFile {
		t.Fatalf("expected file backend, got %s", cfg.Store.Backend)
	}
	if cfg.Store.Path != "/var/lib/eventplan/slot.json" {
		t.Fatalf("env override ignored: %s", cfg.Store.Path)
	}
	if cfg.Simulation.Step() != 30*time.Minute {
		t.Fatalf("env step ignored: %v", cfg.Simulation.Step())
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "logging:\n  level: debug\n")
	t.Setenv("EVENTPLAN_LOGGING__LEVEL", "error")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("expected env level, got %s", cfg.Logging.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"config.toml":      "x = 1",
		"bad-backend.yaml": "store:\n  backend: redis\n",
		"bad-level.yaml":   "logging:\n  level: loud\n",
		"bad-step.yaml":    "simulation:\n  step_minutes: -1\n",
	}
	for name, data := range cases {
		path := writeFile(t, name, data)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Store.Path != "autosave.eventplan.json" {
		t.Fatalf("unexpected default path %s", cfg.Store.Path)
	}
	if cfg.Metrics.Enabled() {
		t.Fatal("metrics should be disabled by default")
	}
}
