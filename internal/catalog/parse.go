package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"alcyxob/workout-tracker/internal/domain"
)

var (
	// ErrMalformedCatalog wraps every decode or validation failure of the catalog documents.
	ErrMalformedCatalog = errors.New("malformed catalog")
	// ErrAssetNotFound is returned by a Source when an optional document does not exist.
	ErrAssetNotFound = errors.New("catalog asset not found")
)

// ParseEntries decodes the entry array. Unknown fields are ignored. A blank normalizedName is
// derived from name; ids must be present and unique.
func ParseEntries(data []byte) ([]domain.CatalogEntry, error) {
	var entries []domain.CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode entries: %v", ErrMalformedCatalog, err)
	}

	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		e := &entries[i]
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrMalformedCatalog, i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformedCatalog, e.ID)
		}
		seen[e.ID] = struct{}{}

		if strings.TrimSpace(e.NormalizedName) == "" {
			e.NormalizedName = NormalizeName(e.Name)
		}
		if e.NormalizedName == "" {
			return nil, fmt.Errorf("%w: entry %q has an empty name", ErrMalformedCatalog, e.ID)
		}
	}
	return entries, nil
}

// metadataDocument is the separate metadata JSON shipped next to the entries.
type metadataDocument struct {
	Count      int      `json:"count"`
	BodyParts  []string `json:"bodyParts"`
	Equipments []string `json:"equipments"`
	Muscles    []string `json:"muscles"`
}

func parseMetadata(data []byte) (metadataDocument, error) {
	var doc metadataDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%w: decode metadata: %v", ErrMalformedCatalog, err)
	}
	return doc, nil
}

// DeriveMetadata collects the distinct facet values across entries, sorted.
func DeriveMetadata(entries []domain.CatalogEntry) domain.CatalogMetadata {
	bodyParts := newValueSet()
	equipments := newValueSet()
	muscles := newValueSet()
	difficulties := newValueSet()
	mechanics := newValueSet()
	for i := range entries {
		e := &entries[i]
		bodyParts.add(e.BodyParts...)
		equipments.add(e.Equipments...)
		muscles.add(e.TargetMuscles...)
		muscles.add(e.SecondaryMuscles...)
		if e.Difficulty != nil {
			difficulties.add(*e.Difficulty)
		}
		if e.Mechanic != nil {
			mechanics.add(*e.Mechanic)
		}
	}
	return domain.CatalogMetadata{
		Count:        len(entries),
		BodyParts:    bodyParts.sorted(),
		Equipments:   equipments.sorted(),
		Muscles:      muscles.sorted(),
		Difficulties: difficulties.sorted(),
		Mechanics:    mechanics.sorted(),
	}
}

// parseFacetList accepts either ["chest", ...] or [{"name": "chest"}, ...].
func parseFacetList(data []byte) ([]string, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		return sortedDistinct(names), nil
	}
	var objects []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, err
	}
	names = make([]string, 0, len(objects))
	for _, o := range objects {
		names = append(names, o.Name)
	}
	return sortedDistinct(names), nil
}

func sortedDistinct(values []string) []string {
	s := newValueSet()
	s.add(values...)
	return s.sorted()
}

type valueSet map[string]struct{}

func newValueSet() valueSet { return valueSet{} }

func (s valueSet) add(values ...string) {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			s[v] = struct{}{}
		}
	}
}

func (s valueSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
