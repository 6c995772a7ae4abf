// Package output provides report and hit-table formatters.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-myvariant/internal/analysis"
)

// TabWriter writes per-variant hits in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Query",
			"Found",
			"Genes",
			"Modifier_impact",
			"Mutationtaster",
			"Non_synonymous",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single hit.
func (tw *TabWriter) Write(hit *analysis.VariantHit) error {
	query := hit.QueryID
	if query == "" {
		query = "-"
	}

	found := "NO"
	if hit.Found {
		found = "YES"
	}

	genes := "-"
	if len(hit.GeneNames) > 0 {
		genes = strings.Join(hit.GeneNames, ",")
	}

	values := []string{
		query,
		found,
		genes,
		strconv.Itoa(hit.ModifierImpact),
		strconv.Itoa(hit.MutationTaster),
		strconv.Itoa(hit.NonSynonymous),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteAll writes the header followed by every hit and flushes.
func (tw *TabWriter) WriteAll(hits []*analysis.VariantHit) error {
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, h := range hits {
		if err := tw.Write(h); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
