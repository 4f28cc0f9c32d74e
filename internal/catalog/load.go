package catalog

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
)

// Load reads and assembles a catalog from src. The entries document is required; the metadata
// document and the auxiliary facet files are optional, and a missing or malformed one falls back
// to values derived from entries.
func Load(ctx context.Context, src Source, log *logger.Logger) (*domain.Catalog, error) {
	raw, err := src.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog entries from %s: %w", src, err)
	}
	entries, err := ParseEntries(raw)
	if err != nil {
		return nil, err
	}
	meta := DeriveMetadata(entries)

	rawMeta, err := src.Metadata(ctx)
	switch {
	case errors.Is(err, ErrAssetNotFound):
		log.Debug("catalog metadata document absent, using derived facets", "source", src.String())
	case err != nil:
		return nil, fmt.Errorf("read catalog metadata from %s: %w", src, err)
	default:
		doc, err := parseMetadata(rawMeta)
		if err != nil {
			log.Warn("catalog metadata malformed, using derived facets", "source", src.String(), "error", err)
			break
		}
		if doc.Count != 0 && doc.Count != len(entries) {
			log.Warn("catalog metadata count mismatch", "declared", doc.Count, "entries", len(entries))
		}
		meta.BodyParts = preferNonEmpty(sortedDistinct(doc.BodyParts), meta.BodyParts)
		meta.Equipments = preferNonEmpty(sortedDistinct(doc.Equipments), meta.Equipments)
		meta.Muscles = preferNonEmpty(sortedDistinct(doc.Muscles), meta.Muscles)
	}

	meta.BodyParts = facetOverride(ctx, src, log, FacetBodyParts, meta.BodyParts)
	meta.Equipments = facetOverride(ctx, src, log, FacetEquipments, meta.Equipments)
	meta.Muscles = facetOverride(ctx, src, log, FacetMuscles, meta.Muscles)

	return &domain.Catalog{Entries: entries, Metadata: meta}, nil
}

// facetOverride replaces fallback with the named facet file when it exists and parses.
// Any failure keeps fallback.
func facetOverride(ctx context.Context, src Source, log *logger.Logger, name string, fallback []string) []string {
	data, err := src.Facet(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrAssetNotFound) {
			log.Warn("catalog facet file unreadable, deriving from entries", "facet", name, "error", err)
		}
		return fallback
	}
	values, err := parseFacetList(data)
	if err != nil {
		log.Warn("catalog facet file malformed, deriving from entries", "facet", name, "error", err)
		return fallback
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}

func preferNonEmpty(primary, fallback []string) []string {
	if len(primary) > 0 {
		return primary
	}
	return fallback
}
