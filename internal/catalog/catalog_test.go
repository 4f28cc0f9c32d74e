package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"alcyxob/workout-tracker/internal/logger"
)

const entriesJSON = `[
  {"id": "0001", "name": "Barbell Bench Press", "normalizedName": "barbell bench press",
   "bodyParts": ["chest"], "targetMuscles": ["pectorals"], "secondaryMuscles": ["triceps"],
   "equipments": ["barbell"], "mechanic": "compound", "difficulty": "intermediate",
   "searchTerms": ["barbell", "bench", "press"], "popularity": 97},
  {"id": "0002", "name": "  Élévation   Latérale ", "bodyParts": ["shoulders"],
   "targetMuscles": ["delts"], "equipments": ["dumbbell"], "difficulty": "beginner"},
  {"id": "0003", "name": "Squat", "bodyParts": ["upper legs"], "targetMuscles": ["quads"],
   "secondaryMuscles": ["glutes", "pectorals"], "equipments": ["barbell"]}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Barbell Bench Press", "barbell bench press"},
		{"  Élévation   Latérale ", "elevation laterale"},
		{"Crunch\tWith  Twist", "crunch with twist"},
		{"Ｗide Grip Row", "wide grip row"},
		{"Straße  Ærø  Crunch", "strasse aero crunch"},
		{"Łańcuch Œuvre", "lancuch oeuvre"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseEntries(t *testing.T) {
	entries, err := ParseEntries([]byte(entriesJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].NormalizedName != "barbell bench press" {
		t.Errorf("kept normalized name changed: %q", entries[0].NormalizedName)
	}
	if entries[1].NormalizedName != "elevation laterale" {
		t.Errorf("derived normalized name = %q", entries[1].NormalizedName)
	}
	if entries[0].Mechanic == nil || *entries[0].Mechanic != "compound" {
		t.Errorf("mechanic not decoded: %v", entries[0].Mechanic)
	}
	if entries[2].Difficulty != nil {
		t.Errorf("expected absent difficulty, got %v", *entries[2].Difficulty)
	}
}

func TestParseEntries_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"id":`},
		{"object instead of array", `{"id": "1"}`},
		{"missing id", `[{"name": "Row"}]`},
		{"duplicate id", `[{"id": "1", "name": "Row"}, {"id": "1", "name": "Curl"}]`},
		{"empty name", `[{"id": "1", "name": "   "}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEntries([]byte(tt.data))
			if !errors.Is(err, ErrMalformedCatalog) {
				t.Errorf("expected ErrMalformedCatalog, got %v", err)
			}
		})
	}
}

func TestDeriveMetadata(t *testing.T) {
	entries, err := ParseEntries([]byte(entriesJSON))
	if err != nil {
		t.Fatal(err)
	}
	meta := DeriveMetadata(entries)
	if meta.Count != 3 {
		t.Errorf("count = %d", meta.Count)
	}
	checks := map[string][2][]string{
		"bodyParts":    {meta.BodyParts, {"chest", "shoulders", "upper legs"}},
		"equipments":   {meta.Equipments, {"barbell", "dumbbell"}},
		"muscles":      {meta.Muscles, {"delts", "glutes", "pectorals", "quads", "triceps"}},
		"difficulties": {meta.Difficulties, {"beginner", "intermediate"}},
		"mechanics":    {meta.Mechanics, {"compound"}},
	}
	for name, c := range checks {
		if !reflect.DeepEqual(c[0], c[1]) {
			t.Errorf("%s = %v, want %v", name, c[0], c[1])
		}
	}
}

func TestParseFacetList(t *testing.T) {
	got, err := parseFacetList([]byte(`["waist", "chest", "chest", " "]`))
	if err != nil || !reflect.DeepEqual(got, []string{"chest", "waist"}) {
		t.Errorf("string list: got %v, err %v", got, err)
	}
	got, err = parseFacetList([]byte(`[{"name": "kettlebell"}, {"name": "band"}]`))
	if err != nil || !reflect.DeepEqual(got, []string{"band", "kettlebell"}) {
		t.Errorf("object list: got %v, err %v", got, err)
	}
	if _, err := parseFacetList([]byte(`{"bad": true}`)); err == nil {
		t.Error("expected error for non-list facet document")
	}
}

func TestLoad_FileSource(t *testing.T) {
	dir := t.TempDir()
	src := FileSource{
		EntriesPath:  writeFile(t, dir, "exercises.json", entriesJSON),
		MetadataPath: writeFile(t, dir, "metadata.json", `{"count": 3, "equipments": ["barbell", "dumbbell", "cable"], "extra": 1}`),
		FacetsDir:    dir,
	}
	writeFile(t, dir, FacetBodyParts, `[{"name": "waist"}, {"name": "chest"}]`)
	writeFile(t, dir, FacetMuscles, `not json`)

	cat, err := Load(context.Background(), src, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(cat.Entries))
	}
	// facet file wins over derived values
	if !reflect.DeepEqual(cat.Metadata.BodyParts, []string{"chest", "waist"}) {
		t.Errorf("bodyParts = %v", cat.Metadata.BodyParts)
	}
	// metadata document list wins when no facet file exists
	if !reflect.DeepEqual(cat.Metadata.Equipments, []string{"barbell", "cable", "dumbbell"}) {
		t.Errorf("equipments = %v", cat.Metadata.Equipments)
	}
	// malformed facet file falls back to derived values
	if !reflect.DeepEqual(cat.Metadata.Muscles, []string{"delts", "glutes", "pectorals", "quads", "triceps"}) {
		t.Errorf("muscles = %v", cat.Metadata.Muscles)
	}
}

func TestLoad_OptionalDocumentsMissing(t *testing.T) {
	dir := t.TempDir()
	src := FileSource{
		EntriesPath:  writeFile(t, dir, "exercises.json", entriesJSON),
		MetadataPath: filepath.Join(dir, "missing-metadata.json"),
		FacetsDir:    filepath.Join(dir, "no-such-dir"),
	}
	cat, err := Load(context.Background(), src, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cat.Metadata.BodyParts, []string{"chest", "shoulders", "upper legs"}) {
		t.Errorf("bodyParts = %v", cat.Metadata.BodyParts)
	}
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(context.Background(), FileSource{EntriesPath: filepath.Join(dir, "nope.json")}, logger.Nop())
	if !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("missing entries: expected ErrAssetNotFound, got %v", err)
	}

	_, err = Load(context.Background(), FileSource{EntriesPath: writeFile(t, dir, "bad.json", `[{`)}, logger.Nop())
	if !errors.Is(err, ErrMalformedCatalog) {
		t.Errorf("bad entries: expected ErrMalformedCatalog, got %v", err)
	}
}

func TestLoad_MalformedMetadataFallsBack(t *testing.T) {
	dir := t.TempDir()
	entries := writeFile(t, dir, "exercises.json", entriesJSON)

	for _, doc := range []string{`{not json`, `[]`} {
		cat, err := Load(context.Background(), FileSource{
			EntriesPath:  entries,
			MetadataPath: writeFile(t, dir, "metadata.json", doc),
		}, logger.Nop())
		if err != nil {
			t.Fatalf("metadata %q: unexpected error: %v", doc, err)
		}
		if len(cat.Entries) != 3 || cat.Metadata.Count != 3 {
			t.Errorf("metadata %q: catalog = %d entries, count %d", doc, len(cat.Entries), cat.Metadata.Count)
		}
		if !reflect.DeepEqual(cat.Metadata.Equipments, []string{"barbell", "dumbbell"}) {
			t.Errorf("metadata %q: equipments = %v", doc, cat.Metadata.Equipments)
		}
	}
}

func TestLoad_EmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	cat, err := Load(context.Background(), FileSource{EntriesPath: writeFile(t, dir, "empty.json", `[]`)}, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Entries) != 0 || cat.Metadata.Count != 0 {
		t.Errorf("expected empty catalog, got %+v", cat)
	}
}
