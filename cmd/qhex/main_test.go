package main

import (
	"path/filepath"
	"testing"

	"github.com/kobzarvs/qhex/internal/app"
)

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QHEX_CONFIG_HOME", dir)
	t.Setenv("QHEX_LOG_FILE", filepath.Join(dir, "qhex.log"))

	if code := run(nil); code != app.ExitMissingPath {
		t.Fatalf("no args: code = %d, want %d", code, app.ExitMissingPath)
	}
	if code := run([]string{"a", "b"}); code != app.ExitMissingPath {
		t.Fatalf("two args: code = %d, want %d", code, app.ExitMissingPath)
	}
	if code := run([]string{filepath.Join(dir, "missing.bin")}); code != app.ExitUnreadable {
		t.Fatalf("missing file: code = %d, want %d", code, app.ExitUnreadable)
	}
	if code := run([]string{"--bogus"}); code != 1 {
		t.Fatalf("bad flag: code = %d, want 1", code)
	}
}
