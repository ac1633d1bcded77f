package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JASKGRID_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.PageSize != 20 {
		t.Fatalf("page size = %d, want default 20", cfg.UI.PageSize)
	}
	if !cfg.Clipboard.System {
		t.Fatal("system clipboard should default to enabled")
	}
	if cfg.Database.Path == "" {
		t.Fatal("database path default missing")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[ui]\npage_size = 7\n\n[clipboard]\nsystem = false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JASKGRID_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.PageSize != 7 {
		t.Fatalf("page size = %d, want 7", cfg.UI.PageSize)
	}
	if cfg.Clipboard.System {
		t.Fatal("clipboard.system = true, want false from file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("JASKGRID_CONFIG", path)

	want := Config{
		Database:  DatabaseConfig{Path: "/tmp/test.db"},
		UI:        UIConfig{PageSize: 9, AccentColor: "#ff0000"},
		Clipboard: ClipboardConfig{System: false},
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Database.Path != want.Database.Path {
		t.Fatalf("db path = %q, want %q", got.Database.Path, want.Database.Path)
	}
	if got.UI.PageSize != 9 || got.UI.AccentColor != "#ff0000" {
		t.Fatalf("ui = %+v, want %+v", got.UI, want.UI)
	}
}
