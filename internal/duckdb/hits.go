package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-myvariant/internal/analysis"
)

// ReplaceVariantHits swaps the exported hits for the given ones in a
// single transaction, so a failed export leaves the previous rows in place.
// Hits with an already seen query id are dropped before writing.
func (s *Store) ReplaceVariantHits(ctx context.Context, hits []*analysis.VariantHit) (err error) {
	seen := make(map[string]bool, len(hits))
	deduped := make([]*analysis.VariantHit, 0, len(hits))
	for _, h := range hits {
		if !seen[h.QueryID] {
			seen[h.QueryID] = true
			deduped = append(deduped, h)
		}
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN TRANSACTION"); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	if _, err := conn.ExecContext(ctx, "DELETE FROM variant_hits"); err != nil {
		return fmt.Errorf("clear variant hits: %w", err)
	}
	if err := appendHits(conn, deduped); err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit variant hits: %w", err)
	}
	return nil
}

// appendHits writes hits on conn using the Appender API. Rows join the
// transaction open on conn.
func appendHits(conn *sql.Conn, hits []*analysis.VariantHit) error {
	if len(hits) == 0 {
		return nil
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "variant_hits")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}

	for _, h := range hits {
		if err := appender.AppendRow(
			h.QueryID, h.Found, strings.Join(h.GeneNames, ","),
			int64(h.ModifierImpact), int64(h.MutationTaster), int64(h.NonSynonymous),
		); err != nil {
			appender.Close()
			return fmt.Errorf("append variant hit: %w", err)
		}
	}

	if err := appender.Close(); err != nil {
		return fmt.Errorf("flush variant hits: %w", err)
	}
	return nil
}

// CountVariantHits returns the number of exported hits.
func (s *Store) CountVariantHits() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT count(*) FROM variant_hits").Scan(&n); err != nil {
		return 0, fmt.Errorf("count variant hits: %w", err)
	}
	return n, nil
}

// LookupHit returns the hit exported for a query id, or nil if absent.
func (s *Store) LookupHit(queryID string) (*analysis.VariantHit, error) {
	rows, err := s.db.Query(`SELECT
		query_id, found, gene_names, modifier_impact, mutation_taster, non_synonymous
		FROM variant_hits
		WHERE query_id=?`, queryID)
	if err != nil {
		return nil, fmt.Errorf("query hit: %w", err)
	}
	defer rows.Close()

	hits, err := scanVariantHits(rows)
	if err != nil || len(hits) == 0 {
		return nil, err
	}
	return hits[0], nil
}

// SearchByGene returns all exported hits that list the gene.
func (s *Store) SearchByGene(geneName string) ([]*analysis.VariantHit, error) {
	rows, err := s.db.Query(`SELECT
		query_id, found, gene_names, modifier_impact, mutation_taster, non_synonymous
		FROM variant_hits
		WHERE list_contains(string_split(gene_names, ','), ?)
		ORDER BY query_id`, geneName)
	if err != nil {
		return nil, fmt.Errorf("query by gene: %w", err)
	}
	defer rows.Close()

	return scanVariantHits(rows)
}

// scanVariantHits scans rows into VariantHit slices.
func scanVariantHits(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*analysis.VariantHit, error) {
	var hits []*analysis.VariantHit
	for rows.Next() {
		var h analysis.VariantHit
		var genes string
		var modifier, taster, nonSyn int64

		if err := rows.Scan(&h.QueryID, &h.Found, &genes, &modifier, &taster, &nonSyn); err != nil {
			return nil, fmt.Errorf("scan variant hit: %w", err)
		}

		if genes != "" {
			h.GeneNames = strings.Split(genes, ",")
		}
		h.ModifierImpact = int(modifier)
		h.MutationTaster = int(taster)
		h.NonSynonymous = int(nonSyn)
		hits = append(hits, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variant hits: %w", err)
	}
	return hits, nil
}
