// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/anthology-export/internal/locate"
	"github.com/pdiddy/anthology-export/pkg/types"
)

// Store keeps exported records in a SQLite database, one row per paper
// keyed by conference, year, and document position.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path and ensures the schema.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS records (
		conference TEXT NOT NULL,
		year INTEGER NOT NULL,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		abstract TEXT NOT NULL,
		url TEXT NOT NULL,
		PRIMARY KEY (conference, year, position)
	)`)
	return err
}

// Replace swaps every stored record for sel with records in a single
// transaction. Other conferences and years are untouched.
func (s *Store) Replace(ctx context.Context, sel locate.Selector, records []types.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM records WHERE conference = ? AND year = ?`,
		sel.Conference, sel.Year); err != nil {
		return fmt.Errorf("clearing %s: %w", sel, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records
		(conference, year, position, title, author, abstract, url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			sel.Conference, sel.Year, i, r.Title, r.Author, r.Abstract, r.Url); err != nil {
			return fmt.Errorf("inserting record %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// Records returns the stored records for sel in document order.
func (s *Store) Records(ctx context.Context, sel locate.Selector) ([]types.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title, author, abstract, url
		FROM records WHERE conference = ? AND year = ? ORDER BY position`,
		sel.Conference, sel.Year)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", sel, err)
	}
	defer rows.Close()

	records := make([]types.Record, 0)
	for rows.Next() {
		var r types.Record
		if err := rows.Scan(&r.Title, &r.Author, &r.Abstract, &r.Url); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
