package duckdb

import (
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// RecordSource notes which annotation cache an export was built from.
func (s *Store) RecordSource(fp FileFingerprint) error {
	_, err := s.db.Exec(`INSERT INTO export_sources (path, size, mod_time) VALUES (?, ?, ?)`,
		fp.Path, fp.Size, fp.ModTime.UTC())
	if err != nil {
		return fmt.Errorf("record export source: %w", err)
	}
	return nil
}

// Sources returns the recorded export sources, oldest first.
func (s *Store) Sources() ([]FileFingerprint, error) {
	rows, err := s.db.Query(`SELECT path, size, mod_time FROM export_sources ORDER BY exported_at, path`)
	if err != nil {
		return nil, fmt.Errorf("query export sources: %w", err)
	}
	defer rows.Close()

	var out []FileFingerprint
	for rows.Next() {
		var fp FileFingerprint
		if err := rows.Scan(&fp.Path, &fp.Size, &fp.ModTime); err != nil {
			return nil, fmt.Errorf("scan export source: %w", err)
		}
		out = append(out, fp)
	}
	return out, rows.Err()
}
