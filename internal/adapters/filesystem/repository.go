package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"folio/internal/adapters/codec"
	"folio/internal/domain"
	"folio/internal/ports"
)

// Repository implements ports.PortfolioRepository with a single document
// file. The encoding follows the file extension: .json, .yaml/.yml or .js.
type Repository struct {
	path  string
	codec codec.Codec
}

// Ensure Repository implements PortfolioRepository
var _ ports.PortfolioRepository = (*Repository)(nil)

// NewRepository creates a repository backed by path
func NewRepository(path string) (*Repository, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}

	format, err := codec.ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return &Repository{path: path, codec: codec.New(format)}, nil
}

// Path returns the document file path
func (r *Repository) Path() string {
	return r.path
}

// Load reads the document file. A missing file yields an empty document.
func (r *Repository) Load(_ context.Context) (*domain.Portfolio, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.NewPortfolio(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	return r.codec.Decode(data)
}

// Save writes the document to a temporary file in the same directory and
// renames it over the target
func (r *Repository) Save(_ context.Context, p *domain.Portfolio) error {
	data, err := r.codec.Encode(p)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}
	return nil
}

// Clear removes the document file
func (r *Repository) Clear(_ context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", r.path, err)
	}
	return nil
}
