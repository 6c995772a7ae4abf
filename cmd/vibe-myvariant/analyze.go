package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-myvariant/internal/analysis"
	"github.com/inodb/vibe-myvariant/internal/output"
)

// Analysis modes
const (
	modeSubstring  = "substring"
	modeStructured = "structured"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		mode     string
		hitsFile string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report on an existing annotation cache",
		Long: `Answer the fixed questions over --cache without contacting the service.

Modes:
  substring   count lines of the cached JSON containing fixed markers
  structured  walk the JSON and inspect each datasource object`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := viperSettings()
			if err != nil {
				return err
			}

			summary, err := summarize(s.Cache, mode)
			if err != nil {
				return err
			}
			if err := output.WriteSummary(cmd.OutOrStdout(), summary); err != nil {
				return err
			}

			if hitsFile != "" {
				if err := writeHits(cmd.OutOrStdout(), s.Cache, hitsFile); err != nil {
					return err
				}
				a.logger.Info("wrote hit table", zap.String("path", hitsFile))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", modeSubstring, "Analysis mode: substring, structured")
	cmd.Flags().StringVar(&hitsFile, "hits", "", "Write a per-variant tab-delimited hit table ('-' for stdout)")

	return cmd
}

// runReport is the default action: fetch if needed, then report.
func (a *app) runReport(cmd *cobra.Command) error {
	s, err := viperSettings()
	if err != nil {
		return err
	}

	if _, _, err := a.fetch(cmd.Context(), s); err != nil {
		return err
	}

	summary, err := summarize(s.Cache, modeSubstring)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := output.WriteSummary(out, summary); err != nil {
		return err
	}
	if err := output.WriteBrowserHint(out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, "\nDone")
	return err
}

func summarize(cachePath, mode string) (*analysis.Summary, error) {
	switch mode {
	case modeSubstring:
		return analysis.CountSubstringsFile(cachePath)
	case modeStructured:
		res, err := analysis.AnalyzeFile(cachePath)
		if err != nil {
			return nil, err
		}
		return res.Summary, nil
	default:
		return nil, usageError{fmt.Errorf("unknown analysis mode %q", mode)}
	}
}

// writeHits writes the structured hit table to path, or to stdout for "-".
func writeHits(stdout io.Writer, cachePath, path string) error {
	res, err := analysis.AnalyzeFile(cachePath)
	if err != nil {
		return err
	}

	if path == "-" {
		return writeHitTable(stdout, res.Hits)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating hit table: %w", err)
	}
	if err := writeHitTable(f, res.Hits); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing hit table: %w", err)
	}
	return nil
}

func writeHitTable(w io.Writer, hits []*analysis.VariantHit) error {
	if err := output.NewTabWriter(w).WriteAll(hits); err != nil {
		return fmt.Errorf("writing hit table: %w", err)
	}
	return nil
}
