// Package sqlite stores the portfolio document in a SQLite key-value table
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"folio/internal/adapters/codec"
	"folio/internal/application"
	"folio/internal/domain"
	"folio/internal/ports"

	_ "modernc.org/sqlite"
)

const (
	schemaVersion = "1"

	// DocumentKey is the key the whole document is stored under
	DocumentKey = "dashboardData"

	// DefaultKeepRevisions bounds the revision table
	DefaultKeepRevisions = 50
)

// Store implements ports.PortfolioRepository using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	keep   int
	logger *slog.Logger
	now    func() time.Time
}

// Ensure Store implements the repository ports
var (
	_ ports.PortfolioRepository = (*Store)(nil)
	_ ports.RevisionLog         = (*Store)(nil)
)

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for store events
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithKeepRevisions sets how many revisions are retained; zero disables
// the revision log
func WithKeepRevisions(n int) Option {
	return func(s *Store) { s.keep = n }
}

// Open opens or creates the database at dbPath
func Open(dbPath string, opts ...Option) (*Store, error) {
	s := &Store{
		dbPath: expandHome(dbPath),
		keep:   DefaultKeepRevisions,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS revisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			saved_at INTEGER NOT NULL,
			value BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_revisions_key ON revisions(key, id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	s.logger.Debug("opened store", "path", s.dbPath)
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// DatabasePath returns the default database location inside dataDir, or
// under the XDG data directory when dataDir is empty
func DatabasePath(dataDir string) string {
	if dataDir == "" {
		dataDir = os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, _ := os.UserHomeDir()
			dataDir = filepath.Join(home, ".local", "share")
		}
		dataDir = filepath.Join(dataDir, "folio")
	}
	return filepath.Join(expandHome(dataDir), "folio.db")
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Load returns the stored document, or an empty one when nothing is stored
func (s *Store) Load(ctx context.Context) (*domain.Portfolio, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, DocumentKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewPortfolio(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", DocumentKey, err)
	}
	return decode(data)
}

// Save replaces the stored document and records a revision
func (s *Store) Save(ctx context.Context, p *domain.Portfolio) error {
	data, err := codec.EncodeJSON(p)
	if err != nil {
		return err
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.now().Unix()
	if err := tx.putValue(DocumentKey, data, now); err != nil {
		return fmt.Errorf("failed to write %s: %w", DocumentKey, err)
	}
	if s.keep > 0 {
		if err := tx.appendRevision(DocumentKey, data, now); err != nil {
			return fmt.Errorf("failed to record revision: %w", err)
		}
		if err := tx.pruneRevisions(DocumentKey, s.keep); err != nil {
			return fmt.Errorf("failed to prune revisions: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	s.logger.Debug("saved document", "bytes", len(data))
	return nil
}

// Clear removes the stored document. Revisions are kept so a cleared
// document can be restored.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, DocumentKey); err != nil {
		return fmt.Errorf("failed to clear %s: %w", DocumentKey, err)
	}
	s.logger.Info("cleared document")
	return nil
}

// Revisions lists stored revisions, newest first
func (s *Store) Revisions(ctx context.Context, limit int) ([]ports.Revision, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, saved_at, length(value)
		FROM revisions WHERE key = ?
		ORDER BY id DESC LIMIT ?
	`, DocumentKey, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []ports.Revision
	for rows.Next() {
		var r ports.Revision
		if err := rows.Scan(&r.ID, &r.SavedAt, &r.Size); err != nil {
			return nil, err
		}
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// Restore decodes revision id. The caller decides whether to save it.
func (s *Store) Restore(ctx context.Context, id int64) (*domain.Portfolio, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM revisions WHERE id = ? AND key = ?`, id, DocumentKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &application.LookupError{Kind: "revision", Key: fmt.Sprint(id)}
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func decode(data []byte) (*domain.Portfolio, error) {
	p, err := codec.New(codec.FormatJSON).Decode(data)
	if err != nil {
		return nil, fmt.Errorf("stored %s is corrupt: %w", DocumentKey, err)
	}
	return p, nil
}
