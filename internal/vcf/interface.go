// Package vcf provides VCF file parsing functionality.
package vcf

import "fmt"

// VariantParser is the interface for parsers that read variants.
type VariantParser interface {
	// Next reads the next variant.
	// Returns nil, nil when there are no more variants.
	Next() (*Variant, error)

	// Close closes the parser and releases resources.
	Close() error

	// LineNumber returns the current line number being processed.
	LineNumber() int
}

// CollectQueryIDs reads at most limit variants from the parser and returns
// their query identifiers in file order. A limit <= 0 reads everything.
func CollectQueryIDs(p VariantParser, limit int) ([]string, error) {
	var ids []string
	for limit <= 0 || len(ids) < limit {
		v, err := p.Next()
		if err != nil {
			return nil, fmt.Errorf("read variant: %w", err)
		}
		if v == nil {
			break
		}
		ids = append(ids, v.QueryID())
	}
	return ids, nil
}
