// Package bibstore persists bibliography entries in a SQLite database,
// so a journal's bibliography is imported once and reused across
// conversions.
package bibstore

import (
	"database/sql"
	"fmt"

	"github.com/amleao/artmd/internal/bib"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection of a bibliography store.
type DB struct {
	db *sql.DB
}

// Open opens or creates a store at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the store.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT PRIMARY KEY,
			entry_type TEXT NOT NULL
		);

		-- Tags keep their source order; lookups take the first match.
		CREATE TABLE IF NOT EXISTS tags (
			key TEXT NOT NULL,
			ord INTEGER NOT NULL,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (key, ord)
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Put stores entries, replacing any existing entry with the same key.
func (d *DB) Put(entries []*bib.Entry) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	entryStmt, err := tx.Prepare(`INSERT OR REPLACE INTO entries (key, entry_type) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer entryStmt.Close()

	clearStmt, err := tx.Prepare(`DELETE FROM tags WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("preparing tag clear: %w", err)
	}
	defer clearStmt.Close()

	tagStmt, err := tx.Prepare(`INSERT INTO tags (key, ord, name, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing tag insert: %w", err)
	}
	defer tagStmt.Close()

	for _, e := range entries {
		if _, err := entryStmt.Exec(e.Key, e.Type); err != nil {
			return fmt.Errorf("storing %s: %w", e.Key, err)
		}
		if _, err := clearStmt.Exec(e.Key); err != nil {
			return fmt.Errorf("clearing tags of %s: %w", e.Key, err)
		}
		for i, t := range e.Tags {
			if _, err := tagStmt.Exec(e.Key, i, t.Name, t.Value); err != nil {
				return fmt.Errorf("storing tag %s of %s: %w", t.Name, e.Key, err)
			}
		}
	}

	return tx.Commit()
}

// Get returns the entry for a citation key, or nil if absent.
func (d *DB) Get(key string) (*bib.Entry, error) {
	var typ string
	err := d.db.QueryRow(`SELECT entry_type FROM entries WHERE key = ?`, key).Scan(&typ)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading entry %s: %w", key, err)
	}

	e := &bib.Entry{Type: typ, Key: key}
	rows, err := d.db.Query(`SELECT name, value FROM tags WHERE key = ? ORDER BY ord`, key)
	if err != nil {
		return nil, fmt.Errorf("reading tags of %s: %w", key, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t bib.Tag
		if err := rows.Scan(&t.Name, &t.Value); err != nil {
			return nil, err
		}
		e.Tags = append(e.Tags, t)
	}
	return e, rows.Err()
}

// Keys returns all citation keys in sorted order.
func (d *DB) Keys() ([]string, error) {
	rows, err := d.db.Query(`SELECT key FROM entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Count returns the number of stored entries.
func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}

// Load reads the whole store as an in-memory bibliography.
func (d *DB) Load() (bib.Bibliography, error) {
	b := bib.Bibliography{}

	rows, err := d.db.Query(`SELECT key, entry_type FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		e := &bib.Entry{}
		if err := rows.Scan(&e.Key, &e.Type); err != nil {
			return nil, err
		}
		b[e.Key] = e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tagRows, err := d.db.Query(`SELECT key, name, value FROM tags ORDER BY key, ord`)
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var key string
		var t bib.Tag
		if err := tagRows.Scan(&key, &t.Name, &t.Value); err != nil {
			return nil, err
		}
		if e, ok := b[key]; ok {
			e.Tags = append(e.Tags, t)
		}
	}
	return b, tagRows.Err()
}
