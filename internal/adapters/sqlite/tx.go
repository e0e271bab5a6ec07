package sqlite

import (
	"context"
	"database/sql"
)

// storeTx groups the writes of one Save
type storeTx struct {
	tx *sql.Tx
}

func (s *Store) beginTx(ctx context.Context) (*storeTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx}, nil
}

// putValue inserts or replaces a key
func (t *storeTx) putValue(key string, value []byte, now int64) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, now)
	return err
}

// appendRevision records value unless it equals the latest revision
func (t *storeTx) appendRevision(key string, value []byte, now int64) error {
	var latest []byte
	err := t.tx.QueryRow(`
		SELECT value FROM revisions WHERE key = ? ORDER BY id DESC LIMIT 1
	`, key).Scan(&latest)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if err == nil && string(latest) == string(value) {
		return nil
	}
	_, err = t.tx.Exec(`
		INSERT INTO revisions (key, saved_at, value) VALUES (?, ?, ?)
	`, key, now, value)
	return err
}

// pruneRevisions keeps the newest keep revisions of key
func (t *storeTx) pruneRevisions(key string, keep int) error {
	_, err := t.tx.Exec(`
		DELETE FROM revisions
		WHERE key = ? AND id NOT IN (
			SELECT id FROM revisions WHERE key = ? ORDER BY id DESC LIMIT ?
		)
	`, key, key, keep)
	return err
}

// Commit commits the transaction
func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}
