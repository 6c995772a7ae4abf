package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-myvariant/internal/analysis"
	"github.com/inodb/vibe-myvariant/internal/duckdb"
)

func newLookupCmd(a *app) *cobra.Command {
	var (
		dbPath string
		gene   string
	)

	cmd := &cobra.Command{
		Use:   "lookup [query-id...]",
		Short: "Print exported hits by query id or gene",
		Long: `Read hits back from a DuckDB database written by export and print them as
a tab-delimited table. Give query ids as arguments, or --gene to list every
hit naming that gene.`,
		Example: `  vibe-myvariant lookup --duckdb hits.duckdb chr16:g.60158G>A
  vibe-myvariant lookup --duckdb hits.duckdb --gene RHBDF1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return usageError{errors.New("--duckdb is required")}
			}
			if (gene == "") == (len(args) == 0) {
				return usageError{errors.New("give either query ids or --gene")}
			}

			store, err := duckdb.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			var hits []*analysis.VariantHit
			if gene != "" {
				hits, err = store.SearchByGene(gene)
				if err != nil {
					return err
				}
			} else {
				for _, id := range args {
					hit, err := store.LookupHit(id)
					if err != nil {
						return err
					}
					if hit == nil {
						a.logger.Warn("query id not exported", zap.String("query", id))
						continue
					}
					hits = append(hits, hit)
				}
			}

			return writeHitTable(cmd.OutOrStdout(), hits)
		},
	}

	cmd.Flags().StringVar(&dbPath, "duckdb", "", "DuckDB database written by export")
	cmd.Flags().StringVar(&gene, "gene", "", "List hits naming this gene")

	return cmd
}
