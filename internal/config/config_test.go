package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDataDirWithExplicitEnv(t *testing.T) {
	tmpDir := t.TempDir()
	customDir := filepath.Join(tmpDir, "custom")

	t.Setenv(EnvDataDir, customDir)
	t.Setenv("XDG_DATA_HOME", "")

	if got := GetDataDir(); got != customDir {
		t.Fatalf("expected %q, got %q", customDir, got)
	}
}

func TestGetDataDirFallsBackToXDG(t *testing.T) {
	xdgDir := filepath.Join(t.TempDir(), "xdg")

	t.Setenv(EnvDataDir, "")
	t.Setenv("XDG_DATA_HOME", xdgDir)

	want := filepath.Join(xdgDir, "tally")
	if got := GetDataDir(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGetDBAndBackupPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvDataDir, tmpDir)
	t.Setenv(EnvDBPath, "")

	if got, want := GetDBPath(), filepath.Join(tmpDir, "tally.db"); got != want {
		t.Fatalf("GetDBPath expected %q, got %q", want, got)
	}
	if got, want := GetBackupDir(), filepath.Join(tmpDir, "backups"); got != want {
		t.Fatalf("GetBackupDir expected %q, got %q", want, got)
	}

	override := filepath.Join(tmpDir, "elsewhere.db")
	t.Setenv(EnvDBPath, override)
	if got := GetDBPath(); got != override {
		t.Fatalf("GetDBPath with override expected %q, got %q", override, got)
	}
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvDataDir, tmpDir)
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")

	cfg := Load()
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.BackupDir() != filepath.Join(tmpDir, "backups") {
		t.Fatalf("unexpected backup dir %q", cfg.BackupDir())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{DataDir: "", DBPath: t.TempDir(), LogLevel: "loud"}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"data directory", "is a directory", "invalid log level 'loud'"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected error to mention %q, got %q", want, msg)
		}
	}
}

func TestValidateAcceptsMemoryDatabase(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir(), DBPath: ":memory:", LogLevel: "DEBUG"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
