package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"alcyxob/workout-tracker/internal/storage"
)

// Facet document names looked up next to the catalog.
const (
	FacetBodyParts  = "bodyparts.json"
	FacetEquipments = "equipments.json"
	FacetMuscles    = "muscles.json"
)

// Source provides the raw catalog documents. Metadata and Facet return ErrAssetNotFound
// when the optional document is absent.
type Source interface {
	Entries(ctx context.Context) ([]byte, error)
	Metadata(ctx context.Context) ([]byte, error)
	Facet(ctx context.Context, name string) ([]byte, error)
	String() string
}

// FileSource reads the catalog from the local filesystem.
type FileSource struct {
	EntriesPath  string
	MetadataPath string
	FacetsDir    string
}

func (s FileSource) Entries(ctx context.Context) ([]byte, error) {
	return readFile(s.EntriesPath)
}

func (s FileSource) Metadata(ctx context.Context) ([]byte, error) {
	if s.MetadataPath == "" {
		return nil, ErrAssetNotFound
	}
	return readFile(s.MetadataPath)
}

func (s FileSource) Facet(ctx context.Context, name string) ([]byte, error) {
	if s.FacetsDir == "" {
		return nil, ErrAssetNotFound
	}
	return readFile(filepath.Join(s.FacetsDir, name))
}

func (s FileSource) String() string {
	return "file:" + s.EntriesPath
}

func readFile(p string) ([]byte, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, p)
	}
	return data, err
}

// ObjectSource reads the catalog from object storage.
type ObjectSource struct {
	Storage      storage.FileStorage
	EntriesKey   string
	MetadataKey  string
	FacetsPrefix string
}

func (s ObjectSource) Entries(ctx context.Context) ([]byte, error) {
	return s.get(ctx, s.EntriesKey)
}

func (s ObjectSource) Metadata(ctx context.Context) ([]byte, error) {
	if s.MetadataKey == "" {
		return nil, ErrAssetNotFound
	}
	return s.get(ctx, s.MetadataKey)
}

func (s ObjectSource) Facet(ctx context.Context, name string) ([]byte, error) {
	return s.get(ctx, path.Join(s.FacetsPrefix, name))
}

func (s ObjectSource) String() string {
	return "s3:" + s.EntriesKey
}

func (s ObjectSource) get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Storage.GetObject(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
	}
	return data, err
}
