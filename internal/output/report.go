package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-myvariant/internal/analysis"
)

// BrowserURL opens the uploaded VCF in the iobio genome browser.
const BrowserURL = "https://vcf.iobio.io/?species=Human&build=GRCh38"

// WriteSummary prints the answers in the console report layout.
func WriteSummary(w io.Writer, s *analysis.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nGene Names: %s\n", formatGeneSet(s.GeneNames))
	fmt.Fprintf(&b, "Amount of Genes: %d\n", s.GeneCount())
	fmt.Fprintf(&b, "\nVariants with Putative Impact = Modifier: %d\n", s.ModifierImpact)
	fmt.Fprintf(&b, "\nVariants with Mutationtaster Annotation: %d\n", s.MutationTaster)
	fmt.Fprintf(&b, "\nVariants with Consequence = Non-Synonymous: %d\n", s.NonSynonymous)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteBrowserHint prints the genome browser link.
func WriteBrowserHint(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\n%s\n", BrowserURL)
	return err
}

func formatGeneSet(names []string) string {
	if len(names) == 0 {
		return "{}"
	}
	return "{" + strings.Join(names, ", ") + "}"
}
