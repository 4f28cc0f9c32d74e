package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/search"
	"alcyxob/workout-tracker/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCatalogUnavailable      = errors.New("exercise library is unavailable")
	ErrLibraryExerciseNotFound = errors.New("library exercise not found")
)

// CatalogProvider yields the loaded exercise library. *catalog.Repository satisfies it.
type CatalogProvider interface {
	EnsureLoaded(ctx context.Context) (*domain.Catalog, error)
}

// LibrarySearchResult is a search result page. Total counts matches before the limit is applied.
type LibrarySearchResult struct {
	Exercises   []domain.CatalogEntry
	Suggestions []string
	Total       int
}

// MediaURLs are time-limited download links for an entry's assets.
type MediaURLs struct {
	Hero  string
	Media []string
}

// LibraryService exposes the bundled exercise catalog.
type LibraryService interface {
	Search(ctx context.Context, query string, filters domain.SearchFilters, sortBy domain.SortOption, limit int) (*LibrarySearchResult, error)
	GetEntry(ctx context.Context, id string) (*domain.CatalogEntry, error)
	Facets(ctx context.Context) (*domain.CatalogMetadata, error)
	// MediaURLs returns nil when no object storage is configured.
	MediaURLs(ctx context.Context, entry *domain.CatalogEntry) (*MediaURLs, error)
	// ImportExercise copies a catalog entry into the user's exercises. created is false when the
	// user had already imported it and the existing record is returned.
	ImportExercise(ctx context.Context, userID primitive.ObjectID, libraryID string) (exercise *domain.Exercise, created bool, err error)
}

type libraryService struct {
	catalog      CatalogProvider
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
	log          *logger.Logger

	mu        sync.Mutex
	indexedOf *domain.Catalog
	engine    *search.Engine
}

// NewLibraryService creates a LibraryService. fileStorage may be nil.
func NewLibraryService(catalog CatalogProvider, exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage, log *logger.Logger) LibraryService {
	return &libraryService{
		catalog:      catalog,
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
		log:          log,
	}
}

// searchEngine returns an engine over the current catalog, rebuilding it when the catalog changes.
func (s *libraryService) searchEngine(ctx context.Context) (*search.Engine, *domain.Catalog, error) {
	cat, err := s.catalog.EnsureLoaded(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexedOf != cat {
		s.engine = search.NewEngine(cat.Entries)
		s.indexedOf = cat
		s.log.Debug("library search index built", "entries", s.engine.Len())
	}
	return s.engine, cat, nil
}

func (s *libraryService) Search(ctx context.Context, query string, filters domain.SearchFilters, sortBy domain.SortOption, limit int) (*LibrarySearchResult, error) {
	engine, _, err := s.searchEngine(ctx)
	if err != nil {
		return nil, err
	}
	res := engine.Search(query, filters, sortBy)
	out := &LibrarySearchResult{
		Exercises:   res.Exercises,
		Suggestions: res.Suggestions,
		Total:       len(res.Exercises),
	}
	if limit > 0 && len(out.Exercises) > limit {
		out.Exercises = out.Exercises[:limit]
	}
	return out, nil
}

func (s *libraryService) GetEntry(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	engine, _, err := s.searchEngine(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := engine.Get(strings.TrimSpace(id))
	if !ok {
		return nil, ErrLibraryExerciseNotFound
	}
	return &entry, nil
}

func (s *libraryService) Facets(ctx context.Context) (*domain.CatalogMetadata, error) {
	_, cat, err := s.searchEngine(ctx)
	if err != nil {
		return nil, err
	}
	meta := cat.Metadata
	return &meta, nil
}

func (s *libraryService) MediaURLs(ctx context.Context, entry *domain.CatalogEntry) (*MediaURLs, error) {
	if s.fileStorage == nil || entry == nil {
		return nil, nil
	}
	out := &MediaURLs{Media: []string{}}
	if entry.HeroAsset != "" {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, entry.HeroAsset, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("presign hero asset of %s: %w", entry.ID, err)
		}
		out.Hero = url
	}
	for _, key := range entry.MediaAssets {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("presign media asset of %s: %w", entry.ID, err)
		}
		out.Media = append(out.Media, url)
	}
	return out, nil
}

func (s *libraryService) ImportExercise(ctx context.Context, userID primitive.ObjectID, libraryID string) (*domain.Exercise, bool, error) {
	if userID == primitive.NilObjectID {
		return nil, false, errors.New("user ID is required to import an exercise")
	}
	entry, err := s.GetEntry(ctx, libraryID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.exerciseRepo.GetByLibraryID(ctx, userID, entry.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	exercise := &domain.Exercise{
		UserID:           userID,
		LibraryID:        entry.ID,
		Name:             search.DisplayName(entry.Name),
		BodyParts:        entry.BodyParts,
		TargetMuscles:    entry.TargetMuscles,
		SecondaryMuscles: entry.SecondaryMuscles,
		Equipments:       entry.Equipments,
		Instructions:     entry.Instructions,
	}
	if entry.Difficulty != nil {
		exercise.Difficulty = *entry.Difficulty
	}

	id, err := s.exerciseRepo.Create(ctx, exercise)
	if errors.Is(err, repository.ErrConflict) {
		// a concurrent import of the same entry won the unique index
		existing, err = s.exerciseRepo.GetByLibraryID(ctx, userID, entry.ID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	exercise.ID = id
	s.log.Info("library exercise imported", "userId", userID.Hex(), "libraryId", entry.ID, "exerciseId", id.Hex())
	return exercise, true, nil
}
