package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-myvariant/internal/analysis"
	"github.com/inodb/vibe-myvariant/internal/duckdb"
)

func newExportCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export per-variant hits from the annotation cache to DuckDB",
		Long: `Analyse --cache structurally and write one row per queried variant to the
variant_hits table of a DuckDB database. Existing rows are replaced.`,
		Example: `  vibe-myvariant export --duckdb hits.duckdb
  duckdb hits.duckdb "SELECT * FROM variant_hits WHERE found"`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return usageError{errors.New("--duckdb is required")}
			}
			s, err := viperSettings()
			if err != nil {
				return err
			}

			res, err := analysis.AnalyzeFile(s.Cache)
			if err != nil {
				return err
			}

			store, err := duckdb.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ReplaceVariantHits(cmd.Context(), res.Hits); err != nil {
				return err
			}

			fp, err := duckdb.StatFile(s.Cache)
			if err != nil {
				return fmt.Errorf("stat annotation cache: %w", err)
			}
			if err := store.RecordSource(fp); err != nil {
				return err
			}

			n, err := store.CountVariantHits()
			if err != nil {
				return err
			}
			a.logger.Info("exported hits",
				zap.String("db", dbPath),
				zap.Int("rows", n),
				zap.Int("found", res.Found()))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d variants (%d annotated) to %s\n", n, res.Found(), dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "duckdb", "", "DuckDB database file to write")

	return cmd
}
