package domain

// SortOption selects the ordering applied to library search results.
type SortOption string

const (
	SortRelevance SortOption = "relevance"
	SortName      SortOption = "name"
	SortEquipment SortOption = "equipment"
	SortBodyPart  SortOption = "body_part"
)

// SearchFilters constrains a library search. An empty set places no constraint on its facet;
// values within a facet are OR'd and facets are AND'd.
type SearchFilters struct {
	BodyParts        map[string]struct{}
	Equipments       map[string]struct{}
	PrimaryMuscles   map[string]struct{}
	SecondaryMuscles map[string]struct{}
	Difficulty       map[string]struct{}
	Mechanics        map[string]struct{}
}

// NewFilterSet builds a facet set from values, skipping blanks.
func NewFilterSet(values ...string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

// IsEmpty reports whether no facet carries a constraint.
func (f SearchFilters) IsEmpty() bool {
	return len(f.BodyParts) == 0 && len(f.Equipments) == 0 && len(f.PrimaryMuscles) == 0 &&
		len(f.SecondaryMuscles) == 0 && len(f.Difficulty) == 0 && len(f.Mechanics) == 0
}

// SearchResult is the ranked outcome of a library search.
// Suggestions is only populated when Exercises is empty and the query was not blank.
type SearchResult struct {
	Exercises   []CatalogEntry `json:"exercises"`
	Suggestions []string       `json:"suggestions"`
}
