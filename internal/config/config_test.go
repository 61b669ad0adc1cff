package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("QHEX_CONFIG_HOME", "/tmp/qhex-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/qhex-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/qhex-config")
	}

	t.Setenv("QHEX_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/qhex" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/qhex")
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("QHEX_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.Columns != 12 {
		t.Fatalf("Columns = %d, want 12", cfg.Editor.Columns)
	}
	if !Enabled(cfg.Editor.ConfirmSave) || !Enabled(cfg.Editor.ConfirmQuit) {
		t.Fatalf("confirmations disabled by default")
	}
	if cfg.Keymap["l"] != "move_down" {
		t.Fatalf("keymap l = %q, want %q", cfg.Keymap["l"], "move_down")
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QHEX_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "test.toml"), `
foreground = "#111111"
background = "#222222"
zero-foreground = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
columns = 16
confirm-save = false

[theme]
theme = "test"
background = "#123456"

[keymap]
x = "quit"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.Columns != 16 {
		t.Fatalf("Columns = %d, want 16", cfg.Editor.Columns)
	}
	if Enabled(cfg.Editor.ConfirmSave) {
		t.Fatalf("ConfirmSave = true, want false")
	}
	if !Enabled(cfg.Editor.ConfirmQuit) {
		t.Fatalf("ConfirmQuit = false, want default true")
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.Background != "#123456" {
		t.Fatalf("Background = %q, want %q", cfg.Theme.Background, "#123456")
	}
	if cfg.Theme.ZeroForeground != "#333333" {
		t.Fatalf("ZeroForeground = %q, want %q", cfg.Theme.ZeroForeground, "#333333")
	}
	if cfg.Keymap["x"] != "quit" {
		t.Fatalf("keymap x = %q, want %q", cfg.Keymap["x"], "quit")
	}
	if cfg.Keymap["h"] != "move_up" {
		t.Fatalf("keymap h = %q, want %q", cfg.Keymap["h"], "move_up")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QHEX_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
background = "#bbbbbb"
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if theme.Background != "#bbbbbb" {
		t.Fatalf("Background = %q, want %q", theme.Background, "#bbbbbb")
	}
}

func TestLoadBadToml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QHEX_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[editor\ncolumns = ")
	if _, err := Load(); err == nil {
		t.Fatalf("Load of malformed config succeeded")
	}
}
