// Package storage opens the repository selected by the configuration
package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"folio/internal/adapters/filesystem"
	"folio/internal/adapters/sqlite"
	"folio/internal/config"
	"folio/internal/ports"
)

// DatabaseName is the SQLite file inside the data directory
const DatabaseName = "folio.db"

// Handle is an open repository. Revisions is nil when the store keeps no
// history.
type Handle struct {
	Repo      ports.PortfolioRepository
	Revisions ports.RevisionLog
	// Path is the file holding the document, watched by build --watch
	Path  string
	close func() error
}

// Open opens the store named by cfg.Store
func Open(cfg config.Config, logger *slog.Logger) (*Handle, error) {
	switch cfg.Store {
	case config.StoreFile:
		repo, err := filesystem.NewRepository(cfg.File)
		if err != nil {
			return nil, err
		}
		logger.Debug("using file store", "path", repo.Path())
		return &Handle{Repo: repo, Path: repo.Path(), close: func() error { return nil }}, nil

	case config.StoreSQLite, "":
		store, err := sqlite.Open(filepath.Join(cfg.DataDir, DatabaseName),
			sqlite.WithLogger(logger),
			sqlite.WithKeepRevisions(cfg.Revisions),
		)
		if err != nil {
			return nil, err
		}
		return &Handle{Repo: store, Revisions: store, Path: store.Path(), close: store.Close}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// Close releases the store
func (h *Handle) Close() error {
	if h.close == nil {
		return nil
	}
	return h.close()
}
