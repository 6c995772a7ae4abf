// Package analysis answers the fixed annotation questions over a cached
// myvariant.info response.
package analysis

import (
	linq "github.com/ahmetb/go-linq"
)

// Summary holds the answers for one annotation cache.
type Summary struct {
	GeneNames      []string // sorted, no duplicates
	ModifierImpact int      // putative_impact == MODIFIER
	MutationTaster int      // mutationtaster mentions
	NonSynonymous  int      // consequence == NON_SYNONYMOUS
}

// GeneCount returns the number of distinct gene names.
func (s *Summary) GeneCount() int {
	return len(s.GeneNames)
}

// uniqueSorted returns the distinct names in ascending order.
func uniqueSorted(names []string) []string {
	out := []string{}
	linq.From(names).
		Distinct().
		OrderBy(func(n interface{}) interface{} { return n }).
		ToSlice(&out)
	return out
}
