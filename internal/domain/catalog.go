package domain

// CatalogEntry is one exercise in the bundled library. Entries are immutable once a catalog is built.
type CatalogEntry struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	NormalizedName   string   `json:"normalizedName"`
	BodyParts        []string `json:"bodyParts"`
	TargetMuscles    []string `json:"targetMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Equipments       []string `json:"equipments"`
	Force            *string  `json:"force,omitempty"`
	Mechanic         *string  `json:"mechanic,omitempty"`
	Difficulty       *string  `json:"difficulty,omitempty"`
	Category         *string  `json:"category,omitempty"`
	Alias            []string `json:"alias"`
	SearchTerms      []string `json:"searchTerms"`
	Instructions     []string `json:"instructions"`
	Tips             []string `json:"tips"`
	HeroAsset        string   `json:"heroAsset,omitempty"`
	MediaAssets      []string `json:"mediaAssets,omitempty"`
	Checksum         string   `json:"checksum,omitempty"`
}

// FirstEquipment returns the first equipment tag or "" when the entry has none.
func (e *CatalogEntry) FirstEquipment() string {
	if len(e.Equipments) == 0 {
		return ""
	}
	return e.Equipments[0]
}

// FirstBodyPart returns the first body part tag or "".
func (e *CatalogEntry) FirstBodyPart() string {
	if len(e.BodyParts) == 0 {
		return ""
	}
	return e.BodyParts[0]
}

// CatalogMetadata holds the aggregate facet lists across a catalog, each sorted ascending.
type CatalogMetadata struct {
	Count        int      `json:"count"`
	BodyParts    []string `json:"bodyParts"`
	Equipments   []string `json:"equipments"`
	Muscles      []string `json:"muscles"`
	Difficulties []string `json:"difficulties"`
	Mechanics    []string `json:"mechanics"`
}

// Catalog is a loaded snapshot of the exercise library.
type Catalog struct {
	Entries  []CatalogEntry  `json:"entries"`
	Metadata CatalogMetadata `json:"metadata"`
}
