// Package duckdb exports analysed annotation hits to a DuckDB database.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding exported hits.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS variant_hits (
			query_id VARCHAR,
			found BOOLEAN,
			gene_names VARCHAR,
			modifier_impact BIGINT CHECK (modifier_impact >= 0),
			mutation_taster BIGINT CHECK (mutation_taster >= 0),
			non_synonymous BIGINT CHECK (non_synonymous >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS export_sources (
			path VARCHAR,
			size BIGINT,
			mod_time TIMESTAMP,
			exported_at TIMESTAMP DEFAULT current_timestamp
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
