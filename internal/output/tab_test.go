package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-myvariant/internal/analysis"
)

func TestTabWriter_WriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	header := buf.String()
	for _, col := range []string{"#Query", "Found", "Genes", "Modifier_impact", "Mutationtaster", "Non_synonymous"} {
		assert.Contains(t, header, col)
	}
}

func TestTabWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	hit := &analysis.VariantHit{
		QueryID:        "chr16:g.60158G>A",
		Found:          true,
		GeneNames:      []string{"DDX11L10", "WASH4P"},
		ModifierImpact: 2,
		NonSynonymous:  1,
	}

	require.NoError(t, w.Write(hit))
	require.NoError(t, w.Flush())

	assert.Equal(t, "chr16:g.60158G>A\tYES\tDDX11L10,WASH4P\t2\t0\t1\n", buf.String())
}

func TestTabWriter_Write_NotFound(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.Write(&analysis.VariantHit{QueryID: "chr16:g.60200C>T"}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "chr16:g.60200C>T\tNO\t-\t0\t0\t0\n", buf.String())
}

func TestTabWriter_WriteAll(t *testing.T) {
	var buf bytes.Buffer
	hits := []*analysis.VariantHit{
		{QueryID: "a", Found: true, GeneNames: []string{"X"}},
		{},
	}

	require.NoError(t, NewTabWriter(&buf).WriteAll(hits))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#Query"))
	assert.True(t, strings.HasPrefix(lines[2], "-\tNO"))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	s := &analysis.Summary{
		GeneNames:      []string{"RHBDF1", "WASH4P"},
		ModifierImpact: 4,
		MutationTaster: 1,
		NonSynonymous:  2,
	}

	require.NoError(t, WriteSummary(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "Gene Names: {RHBDF1, WASH4P}\n")
	assert.Contains(t, out, "Amount of Genes: 2\n")
	assert.Contains(t, out, "Variants with Putative Impact = Modifier: 4\n")
	assert.Contains(t, out, "Variants with Mutationtaster Annotation: 1\n")
	assert.Contains(t, out, "Variants with Consequence = Non-Synonymous: 2\n")
}

func TestWriteSummary_NoGenes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, &analysis.Summary{}))
	assert.Contains(t, buf.String(), "Gene Names: {}\n")
	assert.Contains(t, buf.String(), "Amount of Genes: 0\n")
}

func TestWriteBrowserHint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBrowserHint(&buf))
	assert.Equal(t, "\n"+BrowserURL+"\n", buf.String())
}
