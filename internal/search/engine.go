// Package search implements the exercise library search: an inverted index over the catalog,
// facet filtering, ranked sorting and trigram "did you mean" suggestions.
package search

import (
	"cmp"
	"slices"
	"strings"

	"alcyxob/workout-tracker/internal/domain"
)

const (
	maxSuggestions      = 5
	suggestionThreshold = 0.2
)

// Engine answers library queries over one immutable catalog snapshot.
// It holds no mutable state after construction and is safe for concurrent use.
type Engine struct {
	entries []domain.CatalogEntry
	index   Index
	byID    map[string]int
}

// NewEngine indexes entries. The slice must not be modified afterwards.
func NewEngine(entries []domain.CatalogEntry) *Engine {
	byID := make(map[string]int, len(entries))
	for i := range entries {
		byID[entries[i].ID] = i
	}
	return &Engine{
		entries: entries,
		index:   BuildIndex(entries),
		byID:    byID,
	}
}

// Len returns the number of indexed entries.
func (e *Engine) Len() int {
	return len(e.entries)
}

// Get returns the entry with the given id.
func (e *Engine) Get(id string) (domain.CatalogEntry, bool) {
	pos, ok := e.byID[id]
	if !ok {
		return domain.CatalogEntry{}, false
	}
	return e.entries[pos], true
}

// Search returns the entries matching query and filters, ordered by sortBy.
// A blank query matches everything. Unknown sort options rank by relevance.
func (e *Engine) Search(query string, filters domain.SearchFilters, sortBy domain.SortOption) domain.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))

	positions := e.candidates(q)
	positions = e.applyFilters(positions, filters)

	ranked := make([]candidate, len(positions))
	for i, pos := range positions {
		ranked[i] = newCandidate(pos, &e.entries[pos], q)
	}
	slices.SortFunc(ranked, comparatorFor(sortBy))

	result := domain.SearchResult{
		Exercises:   make([]domain.CatalogEntry, len(ranked)),
		Suggestions: []string{},
	}
	for i, c := range ranked {
		result.Exercises[i] = e.entries[c.pos]
	}
	if len(ranked) == 0 && q != "" {
		result.Suggestions = e.suggest(q)
	}
	return result
}

// candidates intersects the index buckets of every query token. When that yields nothing,
// it falls back to a substring scan of names and aliases using the whole query.
func (e *Engine) candidates(q string) []int {
	if q == "" {
		return e.allPositions()
	}

	matched := e.allPositions()
	for _, token := range strings.Fields(q) {
		matched = intersect(matched, e.index.Lookup(token))
		if len(matched) == 0 {
			break
		}
	}
	if len(matched) > 0 {
		return matched
	}

	var fallback []int
	for i := range e.entries {
		if containsQuery(&e.entries[i], q) {
			fallback = append(fallback, i)
		}
	}
	return fallback
}

func containsQuery(entry *domain.CatalogEntry, q string) bool {
	if strings.Contains(entry.NormalizedName, q) {
		return true
	}
	for _, alias := range entry.Alias {
		if strings.Contains(strings.ToLower(alias), q) {
			return true
		}
	}
	return false
}

func (e *Engine) allPositions() []int {
	all := make([]int, len(e.entries))
	for i := range all {
		all[i] = i
	}
	return all
}

func (e *Engine) applyFilters(positions []int, f domain.SearchFilters) []int {
	if f.IsEmpty() {
		return positions
	}
	out := positions[:0:0]
	for _, pos := range positions {
		entry := &e.entries[pos]
		if matchesFacet(entry.BodyParts, f.BodyParts) &&
			matchesFacet(entry.Equipments, f.Equipments) &&
			matchesFacet(entry.TargetMuscles, f.PrimaryMuscles) &&
			matchesFacet(entry.SecondaryMuscles, f.SecondaryMuscles) &&
			matchesFacet(optional(entry.Difficulty), f.Difficulty) &&
			matchesFacet(optional(entry.Mechanic), f.Mechanics) {
			out = append(out, pos)
		}
	}
	return out
}

// matchesFacet is true when the set is empty or any value is a member of it.
func matchesFacet(values []string, set map[string]struct{}) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

func optional(s *string) []string {
	if s == nil {
		return nil
	}
	return []string{*s}
}

type suggestion struct {
	name  string
	score float64
}

// suggest ranks entry names by trigram similarity to q and keeps the best few above the threshold.
func (e *Engine) suggest(q string) []string {
	seen := make(map[string]struct{})
	var scored []suggestion
	for i := range e.entries {
		name := e.entries[i].Name
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if s := Similarity(q, strings.ToLower(name)); s > suggestionThreshold {
			scored = append(scored, suggestion{name: name, score: s})
		}
	}
	slices.SortFunc(scored, func(a, b suggestion) int {
		return cmp.Or(cmp.Compare(b.score, a.score), strings.Compare(strings.ToLower(a.name), strings.ToLower(b.name)))
	})

	out := make([]string, 0, min(len(scored), maxSuggestions))
	for _, s := range scored[:min(len(scored), maxSuggestions)] {
		out = append(out, s.name)
	}
	return out
}
