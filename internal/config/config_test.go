package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDataPath(t *testing.T) {
	t.Setenv("FOLIO_DATA", "")
	if got := DataPath(); got != DefaultDataDir {
		t.Errorf("DataPath() = %q, want %q", got, DefaultDataDir)
	}

	t.Setenv("FOLIO_DATA", "/srv/folio")
	if got := DataPath(); got != "/srv/folio" {
		t.Errorf("DataPath() = %q, want /srv/folio", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FOLIO_DATA", "/data")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/data" || cfg.Store != StoreSQLite || cfg.OutputDir != "public" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.AutosaveWait != time.Second {
		t.Errorf("expected 1s autosave delay, got %v", cfg.AutosaveWait)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	content := "store: file\nfile: /tmp/portfolio.json\nsiteTitle: Ada\nautosaveDelay: 250ms\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_SITE_TITLE", "From Env")
	t.Setenv("FOLIO_OUTPUT_DIR", "dist")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store != StoreFile || cfg.File != "/tmp/portfolio.json" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.SiteTitle != "From Env" || cfg.OutputDir != "dist" {
		t.Errorf("environment should win over the file: %+v", cfg)
	}
	if cfg.AutosaveWait != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.AutosaveWait)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"sqlite", Config{Store: StoreSQLite}, ""},
		{"file without path", Config{Store: StoreFile}, "needs a document path"},
		{"unknown store", Config{Store: "redis"}, "unknown store"},
		{"negative delay", Config{Store: StoreSQLite, AutosaveWait: -1}, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("absolute paths must be unchanged, got %q", got)
	}
}
