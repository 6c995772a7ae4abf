package analysis

import (
	"errors"
	"fmt"
	"os"

	"github.com/Jeffail/gabs"
)

// Datasources are the top-level keys of a hit inspected by Analyze.
var Datasources = []string{"cadd", "dbsnp", "snpeff", "mutdb", "clinvar", "dbnsfp"}

// VariantHit is the per-entry breakdown of a cached response.
type VariantHit struct {
	QueryID        string
	Found          bool
	GeneNames      []string
	ModifierImpact int
	MutationTaster int
	NonSynonymous  int
}

// Result is the outcome of a structured analysis.
type Result struct {
	Summary *Summary
	Hits    []*VariantHit
}

// Found returns the number of entries the service had annotations for.
func (r *Result) Found() int {
	n := 0
	for _, h := range r.Hits {
		if h.Found {
			n++
		}
	}
	return n
}

// Analyze walks the cached JSON array. Entries marked notfound are kept
// as misses. For each datasource object, the object itself and its direct
// children (objects or lists of objects) are checked for genename,
// putative_impact, mutationtaster and consequence keys.
//
// Keys sitting directly on the datasource, such as cadd.consequence, are
// counted too. A walk limited to the datasource's children would miss
// them, while the line scan in CountSubstrings sees them.
func Analyze(data []byte) (*Result, error) {
	parsed, err := gabs.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse annotation cache: %w", err)
	}
	if _, ok := parsed.Data().([]interface{}); !ok {
		return nil, errors.New("annotation cache is not a JSON array")
	}

	entries, err := parsed.Children()
	if err != nil {
		return nil, fmt.Errorf("read annotation entries: %w", err)
	}

	res := &Result{Summary: &Summary{}}
	var genes []string

	for _, entry := range entries {
		hit := &VariantHit{}
		hit.QueryID, _ = entry.Search("query").Data().(string)
		res.Hits = append(res.Hits, hit)

		if _, ok := entry.Data().(map[string]interface{}); !ok || entry.Exists("notfound") {
			continue
		}
		hit.Found = true

		for _, ds := range Datasources {
			source := entry.Search(ds)
			if _, ok := source.Data().(map[string]interface{}); !ok {
				continue
			}
			inspectObject(hit, source)

			children, err := source.ChildrenMap()
			if err != nil {
				continue
			}
			for _, child := range children {
				inspectChild(hit, child)
			}
		}

		hit.GeneNames = uniqueSorted(hit.GeneNames)
		genes = append(genes, hit.GeneNames...)
		res.Summary.ModifierImpact += hit.ModifierImpact
		res.Summary.MutationTaster += hit.MutationTaster
		res.Summary.NonSynonymous += hit.NonSynonymous
	}

	res.Summary.GeneNames = uniqueSorted(genes)
	return res, nil
}

// AnalyzeFile runs Analyze over the file at path.
func AnalyzeFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read annotation cache: %w", err)
	}
	return Analyze(data)
}

func inspectChild(hit *VariantHit, child *gabs.Container) {
	switch child.Data().(type) {
	case map[string]interface{}:
		inspectObject(hit, child)
	case []interface{}:
		items, err := child.Children()
		if err != nil {
			return
		}
		for _, item := range items {
			if _, ok := item.Data().(map[string]interface{}); ok {
				inspectObject(hit, item)
			}
		}
	}
}

func inspectObject(hit *VariantHit, obj *gabs.Container) {
	switch name := obj.Search("genename").Data().(type) {
	case string:
		hit.GeneNames = append(hit.GeneNames, name)
	case []interface{}:
		for _, n := range name {
			if s, ok := n.(string); ok {
				hit.GeneNames = append(hit.GeneNames, s)
			}
		}
	}

	if impact, ok := obj.Search("putative_impact").Data().(string); ok && impact == "MODIFIER" {
		hit.ModifierImpact++
	}
	if obj.Exists("mutationtaster") {
		hit.MutationTaster++
	}
	if c, ok := obj.Search("consequence").Data().(string); ok && c == "NON_SYNONYMOUS" {
		hit.NonSynonymous++
	}
}
