// Package vcf provides VCF file parsing functionality.
package vcf

import (
	"fmt"
	"strings"
)

// Variant holds the columns of a VCF data line needed to query it.
type Variant struct {
	Chrom string // Chromosome name (e.g., "16", "chr16")
	Pos   int64  // 1-based genomic position
	ID    string // Variant identifier (e.g., rs ID)
	Ref   string // Reference allele
	Alt   string // Alternate alleles as written (comma-separated)
}

// FirstAlt returns the first alternate allele.
func (v *Variant) FirstAlt() string {
	alt, _, _ := strings.Cut(v.Alt, ",")
	return alt
}

// QueryID formats the variant as a genomic HGVS identifier using the
// first alternate allele, e.g. "chr16:g.60158G>A".
func (v *Variant) QueryID() string {
	return fmt.Sprintf("%s:g.%d%s>%s", v.Chrom, v.Pos, v.Ref, v.FirstAlt())
}
