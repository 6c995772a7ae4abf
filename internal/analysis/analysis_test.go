package analysis

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestCache(t *testing.T) []byte {
	t.Helper()
	for _, p := range []string{
		filepath.Join("testdata", "annotation.json"),
		filepath.Join("..", "..", "testdata", "annotation.json"),
	} {
		if data, err := os.ReadFile(p); err == nil {
			return data
		}
	}
	t.Skip("annotation.json not found")
	return nil
}

func compact(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.Compact(&buf, data))
	return buf.Bytes()
}

func TestCountSubstrings(t *testing.T) {
	s, err := CountSubstrings(bytes.NewReader(readTestCache(t)))
	require.NoError(t, err)

	assert.Equal(t, []string{"DDX11L10", "RHBDF1", "WASH4P"}, s.GeneNames)
	assert.Equal(t, 3, s.GeneCount())
	assert.Equal(t, 2, s.ModifierImpact)
	assert.Equal(t, 1, s.MutationTaster)
	assert.Equal(t, 2, s.NonSynonymous)
}

func TestCountSubstrings_CompactJSON(t *testing.T) {
	// The service may return the whole array on a single line.
	data := readTestCache(t)
	pretty, err := CountSubstrings(bytes.NewReader(data))
	require.NoError(t, err)

	flat, err := CountSubstrings(bytes.NewReader(compact(t, data)))
	require.NoError(t, err)

	assert.Equal(t, pretty, flat)
}

func TestCountSubstrings_NotJSON(t *testing.T) {
	text := strings.Join([]string{
		`"genename": "TP53",`,
		`"genename": "TP53",`,
		`"genename": "BRCA1"`,
		`"putative_impact": "MODIFIER", "putative_impact": "MODIFIER"`,
		`mutationtaster`,
		`"consequence": "SYNONYMOUS"`,
	}, "\n")

	s, err := CountSubstrings(strings.NewReader(text))
	require.NoError(t, err)

	assert.Equal(t, []string{"BRCA1", "TP53"}, s.GeneNames)
	assert.Equal(t, 1, s.ModifierImpact, "counted per line, not per occurrence")
	assert.Equal(t, 1, s.MutationTaster)
	assert.Equal(t, 0, s.NonSynonymous)
}

func TestCountSubstrings_Empty(t *testing.T) {
	s, err := CountSubstrings(strings.NewReader(""))
	require.NoError(t, err)

	assert.Empty(t, s.GeneNames)
	assert.Zero(t, s.ModifierImpact)
	assert.Zero(t, s.MutationTaster)
	assert.Zero(t, s.NonSynonymous)
}

func TestCountSubstrings_Monotonic(t *testing.T) {
	base := readTestCache(t)
	var entries []json.RawMessage
	require.NoError(t, json.Unmarshal(base, &entries))

	// Adding entries never decreases any counter.
	prev := &Summary{}
	for i := 1; i <= len(entries); i++ {
		doc, err := json.Marshal(entries[:i])
		require.NoError(t, err)

		s, err := CountSubstrings(bytes.NewReader(doc))
		require.NoError(t, err)

		assert.GreaterOrEqual(t, s.GeneCount(), prev.GeneCount())
		assert.GreaterOrEqual(t, s.ModifierImpact, prev.ModifierImpact)
		assert.GreaterOrEqual(t, s.MutationTaster, prev.MutationTaster)
		assert.GreaterOrEqual(t, s.NonSynonymous, prev.NonSynonymous)
		prev = s
	}
}

func TestCountSubstringsFile(t *testing.T) {
	_, err := CountSubstringsFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "annotation.json")
	require.NoError(t, os.WriteFile(path, readTestCache(t), 0o644))

	s, err := CountSubstringsFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.GeneCount())
}

func TestGeneNameFromLine(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`      "genename": "WASH4P",`, "WASH4P"},
		{`"genename": "RHBDF1"`, "RHBDF1"},
		{`"genename": [`, ""},
		{`"genename": {`, ""},
		{`"genename":`, ""},
		{`genename`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, geneNameFromLine(tt.line))
		})
	}
}

func TestAnalyze(t *testing.T) {
	res, err := Analyze(readTestCache(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"DDX11L10", "RHBDF1", "WASH4P"}, res.Summary.GeneNames)
	assert.Equal(t, 2, res.Summary.ModifierImpact)
	assert.Equal(t, 1, res.Summary.MutationTaster)
	assert.Equal(t, 2, res.Summary.NonSynonymous)

	require.Len(t, res.Hits, 3)
	assert.Equal(t, 2, res.Found())

	first := res.Hits[0]
	assert.Equal(t, "chr16:g.60158G>A", first.QueryID)
	assert.True(t, first.Found)
	assert.Equal(t, []string{"DDX11L10", "WASH4P"}, first.GeneNames)
	assert.Equal(t, 2, first.ModifierImpact)
	assert.Equal(t, 1, first.NonSynonymous)

	miss := res.Hits[1]
	assert.Equal(t, "chr16:g.60200C>T", miss.QueryID)
	assert.False(t, miss.Found)
	assert.Empty(t, miss.GeneNames)

	last := res.Hits[2]
	assert.Equal(t, []string{"RHBDF1"}, last.GeneNames)
	assert.Equal(t, 1, last.MutationTaster)
	assert.Equal(t, 0, last.ModifierImpact)
}

func TestAnalyze_AgreesWithSubstringCount(t *testing.T) {
	data := readTestCache(t)

	res, err := Analyze(data)
	require.NoError(t, err)
	s, err := CountSubstrings(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, s, res.Summary)
}

func TestAnalyze_GeneNameList(t *testing.T) {
	doc := `[{"query": "q1", "dbnsfp": {"genename": ["A", "B", "A"]}}]`

	res, err := Analyze([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, res.Hits[0].GeneNames)
}

func TestAnalyze_DatasourceLevelKeys(t *testing.T) {
	doc := `[{"query": "q1", "cadd": {"consequence": "NON_SYNONYMOUS", "genename": "X"}}]`

	res, err := Analyze([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, res.Summary.GeneNames)
	assert.Equal(t, 1, res.Summary.NonSynonymous)

	// The line scan sees the same keys.
	sum, err := CountSubstrings(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, sum, res.Summary)
}

func TestAnalyze_IgnoresUnknownSources(t *testing.T) {
	doc := `[{"query": "q1", "other": {"genename": "X", "putative_impact": "MODIFIER"}, "cadd": "scalar"}]`

	res, err := Analyze([]byte(doc))
	require.NoError(t, err)
	assert.Empty(t, res.Summary.GeneNames)
	assert.Zero(t, res.Summary.ModifierImpact)
	assert.True(t, res.Hits[0].Found)
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := Analyze([]byte("not json"))
	assert.Error(t, err)

	_, err = Analyze([]byte(`{"success": false, "error": "bad request"}`))
	assert.Error(t, err)

	_, err = AnalyzeFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestUniqueSorted(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, uniqueSorted([]string{"C", "A", "B", "A", "C"}))
	assert.Empty(t, uniqueSorted(nil))
}
