package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolateHome points the config file lookup at an empty temp home
func isolateHome(t *testing.T) string {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKBOARD_DATA_DIR", "")
	t.Setenv("TASKBOARD_STORAGE", "")
	t.Setenv("TASKBOARD_EXPORT_DIR", "")
	return home
}

func TestLoad_Default(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(home, "taskboard")
	if cfg.DataDir != expected {
		t.Errorf("expected data dir %q, got %q", expected, cfg.DataDir)
	}
	if cfg.ExportDir != cfg.DataDir {
		t.Errorf("expected export dir to default to data dir, got %q", cfg.ExportDir)
	}
	if cfg.Storage != "file" {
		t.Errorf("expected file storage, got %q", cfg.Storage)
	}
	if !cfg.SeedDemo {
		t.Error("expected demo seeding on by default")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".config", "taskboard")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{
  "data_dir": "~/boards",
  "storage": "sqlite",
  "seed_demo": false
}`), 0644)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != filepath.Join(home, "boards") {
		t.Errorf("expected expanded data dir, got %q", cfg.DataDir)
	}
	if cfg.Storage != "sqlite" {
		t.Errorf("expected sqlite storage, got %q", cfg.Storage)
	}
	if cfg.SeedDemo {
		t.Error("expected seed_demo false from the config file")
	}
}

func TestLoad_EnvVar(t *testing.T) {
	isolateHome(t)
	t.Setenv("TASKBOARD_DATA_DIR", "/tmp/board-data")
	t.Setenv("TASKBOARD_EXPORT_DIR", "/tmp/board-exports")
	t.Setenv("TASKBOARD_STORAGE", "SQLite")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != "/tmp/board-data" {
		t.Errorf("expected /tmp/board-data, got %q", cfg.DataDir)
	}
	if cfg.ExportDir != "/tmp/board-exports" {
		t.Errorf("expected /tmp/board-exports, got %q", cfg.ExportDir)
	}
	if cfg.Storage != "sqlite" {
		t.Errorf("expected storage normalized to sqlite, got %q", cfg.Storage)
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolateHome(t)
	t.Setenv("TASKBOARD_DATA_DIR", "/tmp/env-data")

	cfg, err := Load(CLIFlags{DataDir: "/tmp/cli-data", NoDemo: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.DataDir != "/tmp/cli-data" {
		t.Errorf("expected /tmp/cli-data, got %q", cfg.DataDir)
	}
	if cfg.ExportDir != "/tmp/cli-data" {
		t.Errorf("expected export dir to follow data dir, got %q", cfg.ExportDir)
	}
	if cfg.SeedDemo {
		t.Error("expected --no-demo to disable seeding")
	}
}

func TestLoad_UnknownStorage(t *testing.T) {
	isolateHome(t)

	if _, err := Load(CLIFlags{Storage: "redis"}); err == nil {
		t.Error("expected error for unknown storage backend")
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{
		DataDir:   filepath.Join(root, "data"),
		ExportDir: filepath.Join(root, "exports"),
	}

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, dir := range []string{cfg.DataDir, cfg.ExportDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("expected %s to exist", dir)
		}
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolateHome(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(home, ".config", "taskboard", "config.json")
	settings, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("config file not readable: %v", err)
	}
	if settings.Storage != "file" || settings.SeedDemo == nil || !*settings.SeedDemo {
		t.Errorf("unexpected default settings %+v", settings)
	}

	// Existing files are left alone
	os.WriteFile(path, []byte(`{"data_dir":"/custom"}`), 0644)
	EnsureConfigFile()
	settings, _ = loadConfigFile(path)
	if settings.DataDir != "/custom" {
		t.Errorf("expected existing config to be kept, got %q", settings.DataDir)
	}
}

func TestExpandPath(t *testing.T) {
	home := isolateHome(t)

	tests := []struct {
		input    string
		expected string
	}{
		{"~", home},
		{"~/x", filepath.Join(home, "x")},
		{"/abs", "/abs"},
		{"rel", "rel"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.expected {
			t.Errorf("expandPath(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}
