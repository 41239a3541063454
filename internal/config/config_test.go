package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads", func(t *testing.T) {
		path := writeTempConfig(t, "project: test-project\nversion: 1\nresources: ./resources\nforensics: ./forensics\nseed: 99\nstore:\n  backend: sqlite\n  dsn: file:gridiron.db\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "test-project" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.Seed != 99 {
			t.Fatalf("expected seed 99, got %d", cfg.Seed)
		}
		if cfg.Policy != "balanced_default" {
			t.Fatalf("expected default policy, got %q", cfg.Policy)
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\nresources: ./resources\nforensics: ./forensics\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 2\nresources: ./resources\nforensics: ./forensics\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing resources dir", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nforensics: ./forensics\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing forensics dir", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nresources: ./resources\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("store backend requires dsn", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nresources: ./resources\nforensics: ./forensics\nstore:\n  backend: postgres\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown store backend", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nresources: ./resources\nforensics: ./forensics\nstore:\n  backend: mongo\n  dsn: x\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("store disabled is fine", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nresources: ./resources\nforensics: ./forensics\nstore:\n  backend: none\n")
		if _, err := LoadProjectConfig(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "project: [\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
