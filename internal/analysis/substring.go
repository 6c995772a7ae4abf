package analysis

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Markers searched for in each line of the cache.
const (
	GeneNameMarker       = "genename"
	ModifierImpactMarker = `"putative_impact": "MODIFIER"`
	MutationTasterMarker = "mutationtaster"
	NonSynonymousMarker  = `"consequence": "NON_SYNONYMOUS"`
)

// CountSubstrings scans the cache text line by line and counts lines
// containing each marker. Valid JSON is re-indented first so every key
// sits on its own line, whatever layout the service returned.
func CountSubstrings(r io.Reader) (*Summary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read annotation cache: %w", err)
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err == nil {
		data = indented.Bytes()
	}

	var genes []string
	s := &Summary{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, GeneNameMarker) {
			if name := geneNameFromLine(line); name != "" {
				genes = append(genes, name)
			}
		}
		if strings.Contains(line, ModifierImpactMarker) {
			s.ModifierImpact++
		}
		if strings.Contains(line, MutationTasterMarker) {
			s.MutationTaster++
		}
		if strings.Contains(line, NonSynonymousMarker) {
			s.NonSynonymous++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan annotation cache: %w", err)
	}

	s.GeneNames = uniqueSorted(genes)
	return s, nil
}

// CountSubstringsFile runs CountSubstrings over the file at path.
func CountSubstringsFile(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotation cache: %w", err)
	}
	defer f.Close()

	return CountSubstrings(f)
}

// geneNameFromLine extracts NAME from a line like `"genename": "NAME",`.
// Lines opening a list or object yield "".
func geneNameFromLine(line string) string {
	s := strings.TrimSuffix(strings.TrimSpace(line), ",")
	_, value, ok := strings.Cut(s, ":")
	if !ok {
		return ""
	}
	value = strings.TrimSpace(value)
	if value == "" || value[0] == '[' || value[0] == '{' {
		return ""
	}
	return strings.Trim(value, `"`)
}
