package api

import (
	"context"
	"errors"
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/search"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// LibraryHandler serves the bundled exercise catalog.
type LibraryHandler struct {
	libraryService service.LibraryService
}

func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// LibrarySearchQuery binds the search query string. Facet parameters may repeat.
type LibrarySearchQuery struct {
	Query            string   `form:"q"`
	Sort             string   `form:"sort"`
	BodyParts        []string `form:"bodyPart"`
	Equipments       []string `form:"equipment"`
	PrimaryMuscles   []string `form:"primaryMuscle"`
	SecondaryMuscles []string `form:"secondaryMuscle"`
	Difficulties     []string `form:"difficulty"`
	Mechanics        []string `form:"mechanic"`
	Limit            int      `form:"limit" binding:"min=0,max=1000"`
}

func (q LibrarySearchQuery) filters() domain.SearchFilters {
	return domain.SearchFilters{
		BodyParts:        domain.NewFilterSet(q.BodyParts...),
		Equipments:       domain.NewFilterSet(q.Equipments...),
		PrimaryMuscles:   domain.NewFilterSet(q.PrimaryMuscles...),
		SecondaryMuscles: domain.NewFilterSet(q.SecondaryMuscles...),
		Difficulty:       domain.NewFilterSet(q.Difficulties...),
		Mechanics:        domain.NewFilterSet(q.Mechanics...),
	}
}

// LibraryExerciseResponse is a catalog entry as returned by the API.
type LibraryExerciseResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	DisplayName      string   `json:"displayName"`
	BodyParts        []string `json:"bodyParts"`
	TargetMuscles    []string `json:"targetMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Equipments       []string `json:"equipments"`
	Force            *string  `json:"force,omitempty"`
	Mechanic         *string  `json:"mechanic,omitempty"`
	Difficulty       *string  `json:"difficulty,omitempty"`
	Category         *string  `json:"category,omitempty"`
	Alias            []string `json:"alias,omitempty"`
	Instructions     []string `json:"instructions,omitempty"`
	Tips             []string `json:"tips,omitempty"`
	HeroURL          string   `json:"heroUrl,omitempty"`
	MediaURLs        []string `json:"mediaUrls,omitempty"`
}

type LibrarySearchResponse struct {
	Exercises   []LibraryExerciseResponse `json:"exercises"`
	Suggestions []string                  `json:"suggestions"`
	Total       int                       `json:"total"`
}

// ImportExerciseResponse wraps the user's exercise and whether this call created it.
type ImportExerciseResponse struct {
	Exercise ExerciseResponse `json:"exercise"`
	Created  bool             `json:"created"`
}

// MapCatalogEntryToResponse converts a catalog entry, attaching media URLs when given.
func MapCatalogEntryToResponse(entry *domain.CatalogEntry, media *service.MediaURLs) LibraryExerciseResponse {
	resp := LibraryExerciseResponse{
		ID:               entry.ID,
		Name:             entry.Name,
		DisplayName:      search.DisplayName(entry.Name),
		BodyParts:        entry.BodyParts,
		TargetMuscles:    entry.TargetMuscles,
		SecondaryMuscles: entry.SecondaryMuscles,
		Equipments:       entry.Equipments,
		Force:            entry.Force,
		Mechanic:         entry.Mechanic,
		Difficulty:       entry.Difficulty,
		Category:         entry.Category,
		Alias:            entry.Alias,
		Instructions:     entry.Instructions,
		Tips:             entry.Tips,
	}
	if media != nil {
		resp.HeroURL = media.Hero
		resp.MediaURLs = media.Media
	}
	return resp
}

// SearchExercises godoc
// @Summary Search the exercise library
// @Tags Library
// @Security BearerAuth
// @Param q query string false "Free text query"
// @Param sort query string false "relevance, name, equipment or body_part"
// @Success 200 {object} LibrarySearchResponse
// @Failure 400 {object} gin.H "Unknown sort option"
// @Failure 503 {object} gin.H "Catalog unavailable"
// @Router /library/exercises [get]
func (h *LibraryHandler) SearchExercises(c *gin.Context) {
	var q LibrarySearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	sortBy, err := search.ParseSortOption(q.Sort)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.libraryService.Search(c.Request.Context(), q.Query, q.filters(), sortBy, q.Limit)
	if err != nil {
		abortWithLibraryError(c, err)
		return
	}

	resp := LibrarySearchResponse{
		Exercises:   make([]LibraryExerciseResponse, len(res.Exercises)),
		Suggestions: res.Suggestions,
		Total:       res.Total,
	}
	for i := range res.Exercises {
		resp.Exercises[i] = MapCatalogEntryToResponse(&res.Exercises[i], nil)
	}
	c.JSON(http.StatusOK, resp)
}

// GetExercise godoc
// @Summary Get one library exercise with media URLs
// @Tags Library
// @Security BearerAuth
// @Success 200 {object} LibraryExerciseResponse
// @Failure 404 {object} gin.H "Unknown library id"
// @Router /library/exercises/{id} [get]
func (h *LibraryHandler) GetExercise(c *gin.Context) {
	entry, err := h.libraryService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithLibraryError(c, err)
		return
	}
	media, err := h.libraryService.MediaURLs(c.Request.Context(), entry)
	if err != nil {
		// the entry itself is still useful without media
		_ = c.Error(err)
		media = nil
	}
	c.JSON(http.StatusOK, MapCatalogEntryToResponse(entry, media))
}

// GetFacets godoc
// @Summary List the facet values available for filtering
// @Tags Library
// @Security BearerAuth
// @Success 200 {object} domain.CatalogMetadata
// @Router /library/facets [get]
func (h *LibraryHandler) GetFacets(c *gin.Context) {
	meta, err := h.libraryService.Facets(c.Request.Context())
	if err != nil {
		abortWithLibraryError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

// ImportExercise godoc
// @Summary Copy a library exercise into the user's exercises
// @Tags Library
// @Security BearerAuth
// @Success 201 {object} ImportExerciseResponse "Imported"
// @Success 200 {object} ImportExerciseResponse "Already imported"
// @Router /library/exercises/{id}/import [post]
func (h *LibraryHandler) ImportExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	exercise, created, err := h.libraryService.ImportExercise(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		abortWithLibraryError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, ImportExerciseResponse{Exercise: MapExerciseToResponse(exercise), Created: created})
}

func abortWithLibraryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLibraryExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCatalogUnavailable):
		_ = c.Error(err)
		abortWithError(c, http.StatusServiceUnavailable, "Exercise library is temporarily unavailable.")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		abortWithError(c, http.StatusServiceUnavailable, "Request cancelled before the exercise library was ready.")
	default:
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
