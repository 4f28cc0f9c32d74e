package search

import (
	"strings"

	"alcyxob/workout-tracker/internal/domain"
)

// Index maps a normalized term to the ascending positions of the entries that carry it.
type Index map[string][]int

// BuildIndex indexes every entry's search terms, normalized name and lowercased aliases.
// Only whole terms are keyed; partial matches are handled by the engine's substring fallback.
func BuildIndex(entries []domain.CatalogEntry) Index {
	idx := make(Index)
	for i := range entries {
		e := &entries[i]
		for _, term := range e.SearchTerms {
			idx.add(term, i)
		}
		idx.add(e.NormalizedName, i)
		for _, alias := range e.Alias {
			idx.add(strings.ToLower(alias), i)
		}
	}
	return idx
}

func (idx Index) add(term string, pos int) {
	if strings.TrimSpace(term) == "" {
		return
	}
	bucket := idx[term]
	// positions arrive in ascending order, so a duplicate can only be the last element
	if n := len(bucket); n > 0 && bucket[n-1] == pos {
		return
	}
	idx[term] = append(bucket, pos)
}

// Lookup returns the positions for term, or nil.
func (idx Index) Lookup(term string) []int {
	return idx[term]
}

// intersect returns the positions present in both ascending slices.
func intersect(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
