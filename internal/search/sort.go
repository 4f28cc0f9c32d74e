package search

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"alcyxob/workout-tracker/internal/domain"
)

// ErrUnknownSortOption is returned by ParseSortOption for unrecognised values.
var ErrUnknownSortOption = errors.New("unknown sort option")

// ParseSortOption maps a request value to a SortOption. Blank means relevance.
func ParseSortOption(s string) (domain.SortOption, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relevance":
		return domain.SortRelevance, nil
	case "name":
		return domain.SortName, nil
	case "equipment":
		return domain.SortEquipment, nil
	case "body_part", "bodypart", "body-part":
		return domain.SortBodyPart, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortOption, s)
	}
}

// candidate carries the precomputed sort keys for one matching entry.
type candidate struct {
	pos       int
	score     int
	name      string
	equipment string
	bodyPart  string
}

func newCandidate(pos int, e *domain.CatalogEntry, query string) candidate {
	return candidate{
		pos:       pos,
		score:     relevance(e, query),
		name:      strings.ToLower(e.Name),
		equipment: strings.ToLower(e.FirstEquipment()),
		bodyPart:  strings.ToLower(e.FirstBodyPart()),
	}
}

// relevance scores an entry against a normalized query:
// +100 exact normalized name, +40 prefix, +20 substring, +1 per search term containing the query.
func relevance(e *domain.CatalogEntry, query string) int {
	if query == "" {
		return 0
	}
	score := 0
	if e.NormalizedName == query {
		score += 100
	}
	if strings.HasPrefix(e.NormalizedName, query) {
		score += 40
	}
	if strings.Contains(e.NormalizedName, query) {
		score += 20
	}
	for _, term := range e.SearchTerms {
		if strings.Contains(term, query) {
			score++
		}
	}
	return score
}

type comparator func(a, b candidate) int

// comparators holds one strict total order per sort option. Every order ends on the
// case-insensitive name and then catalog position so results never depend on sort stability.
var comparators = map[domain.SortOption]comparator{
	domain.SortRelevance: func(a, b candidate) int {
		return cmp.Or(cmp.Compare(b.score, a.score), byName(a, b))
	},
	domain.SortName: byName,
	domain.SortEquipment: func(a, b candidate) int {
		return cmp.Or(strings.Compare(a.equipment, b.equipment), byName(a, b))
	},
	domain.SortBodyPart: func(a, b candidate) int {
		return cmp.Or(strings.Compare(a.bodyPart, b.bodyPart), byName(a, b))
	},
}

func byName(a, b candidate) int {
	return cmp.Or(strings.Compare(a.name, b.name), cmp.Compare(a.pos, b.pos))
}

func comparatorFor(opt domain.SortOption) comparator {
	if c, ok := comparators[opt]; ok {
		return c
	}
	return comparators[domain.SortRelevance]
}
