package vector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/viant/audiosim/feature"
	"github.com/viant/audiosim/source"
)

// SQLiteStore keeps feature records in a SQLite database. Records are
// stored raw, so extraction behaves exactly as it does for the JSON files
// they were imported from.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed Store and ensures the features
// schema exists in the provided database.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("vector: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Put upserts records in a single transaction.
func (s *SQLiteStore) Put(ctx context.Context, records []*feature.Record) ([]string, error) {
	if len(records) == 0 {
		return nil, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO features(id, frames) VALUES(?, ?)
ON CONFLICT(id) DO UPDATE SET frames = excluded.frames`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if rec == nil || rec.ID == "" {
			return nil, fmt.Errorf("vector: record ID must be set in Put")
		}
		frames := make([][]float64, len(rec.Data))
		for i, f := range rec.Data {
			frames[i] = f.Values
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, EncodeFrames(frames)); err != nil {
			return nil, fmt.Errorf("vector: put %s: %w", rec.ID, err)
		}
		ids = append(ids, rec.ID)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// List returns all record IDs in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM features ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Load returns the stored record for id.
func (s *SQLiteStore) Load(ctx context.Context, id string) (*feature.Record, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT frames FROM features WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vector: %s: %w", id, source.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	frames, err := DecodeFrames(blob)
	if err != nil {
		return nil, fmt.Errorf("vector: %s: %w: %v", id, source.ErrMalformed, err)
	}
	rec := &feature.Record{ID: id}
	for _, values := range frames {
		rec.Data = append(rec.Data, feature.Frame{Values: values})
	}
	return rec, nil
}

// Remove deletes a record by ID.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("vector: Remove called with empty id")
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM features WHERE id = ?`, id)
	return err
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
