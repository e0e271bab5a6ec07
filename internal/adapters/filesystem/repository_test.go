package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"folio/internal/application"
	"folio/internal/domain"
)

func setupTestDir(t *testing.T) (string, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "folio-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(tmpDir)
	}

	return tmpDir, cleanup
}

func TestRepository_LoadMissingFile(t *testing.T) {
	dir, cleanup := setupTestDir(t)
	defer cleanup()

	repo, err := NewRepository(filepath.Join(dir, "portfolio.json"))
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}

	p, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(p.Categories) != 0 || len(p.Tags) != len(domain.DefaultTags()) {
		t.Errorf("expected empty document with default tags, got %+v", p)
	}
}

func TestRepository_SaveLoadPerFormat(t *testing.T) {
	tests := []struct {
		file   string
		marker string
	}{
		{"portfolio.json", `"projectCategories": {`},
		{"portfolio.yaml", "projectCategories:"},
		{"data.js", "const portfolioData = {"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			dir, cleanup := setupTestDir(t)
			defer cleanup()

			path := filepath.Join(dir, "nested", tt.file)
			repo, err := NewRepository(path)
			if err != nil {
				t.Fatalf("NewRepository failed: %v", err)
			}

			sample := domain.SamplePortfolio()
			if err := repo.Save(context.Background(), sample); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("file not written: %v", err)
			}
			if !strings.Contains(string(raw), tt.marker) {
				t.Errorf("expected %q in output", tt.marker)
			}

			got, err := repo.Load(context.Background())
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !reflect.DeepEqual(got, sample) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, sample)
			}
		})
	}
}

func TestRepository_SaveLeavesNoTempFiles(t *testing.T) {
	dir, cleanup := setupTestDir(t)
	defer cleanup()

	repo, _ := NewRepository(filepath.Join(dir, "portfolio.json"))
	for i := 0; i < 3; i++ {
		if err := repo.Save(context.Background(), domain.SamplePortfolio()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "portfolio.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only portfolio.json, got %v", names)
	}
}

func TestRepository_LoadCorruptFile(t *testing.T) {
	dir, cleanup := setupTestDir(t)
	defer cleanup()

	path := filepath.Join(dir, "portfolio.json")
	if err := os.WriteFile(path, []byte(`{"personal": {}}`), 0644); err != nil {
		t.Fatal(err)
	}

	repo, _ := NewRepository(path)
	_, err := repo.Load(context.Background())

	var pErr *application.ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestRepository_Clear(t *testing.T) {
	dir, cleanup := setupTestDir(t)
	defer cleanup()

	path := filepath.Join(dir, "portfolio.json")
	repo, _ := NewRepository(path)
	if err := repo.Save(context.Background(), domain.SamplePortfolio()); err != nil {
		t.Fatal(err)
	}

	if err := repo.Clear(context.Background()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected file to be removed")
	}
	if err := repo.Clear(context.Background()); err != nil {
		t.Errorf("clearing twice should succeed, got %v", err)
	}
}

func TestNewRepository_UnknownExtension(t *testing.T) {
	if _, err := NewRepository("/tmp/portfolio.xml"); err == nil {
		t.Error("expected error for unknown extension")
	}
}
