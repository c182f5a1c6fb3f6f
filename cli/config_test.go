package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "runkit.toml")
	content := `
history_dir = "/var/lib/runkit/history"
timeout = "45s"
shell = true
quiet = true
	`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HistoryDir != "/var/lib/runkit/history" {
		t.Errorf("unexpected history dir: %q", cfg.HistoryDir)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("unexpected timeout: %s", cfg.Timeout)
	}
	if !cfg.Shell {
		t.Error("shell should be set")
	}
	if !cfg.Quiet {
		t.Error("quiet should be set")
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runkit.toml")
	if err := os.WriteFile(path, []byte(`quiet = true`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HistoryDir != "" || cfg.Timeout != 0 || cfg.Shell {
		t.Errorf("undefined keys should stay zero: %+v", cfg)
	}
	if !cfg.Quiet {
		t.Error("quiet should be set")
	}
}

func TestLoadConfigBadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runkit.toml")
	if err := os.WriteFile(path, []byte(`timeout = "soon"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for an unparsable timeout")
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected an error for an explicit path that does not exist")
	}
}
