package api

import (
	"errors"
	"net/http"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the user's own exercises.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// CreateExerciseRequest defines the expected JSON for a custom exercise.
type CreateExerciseRequest struct {
	Name             string   `json:"name" binding:"required"`
	BodyParts        []string `json:"bodyParts"`
	TargetMuscles    []string `json:"targetMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Equipments       []string `json:"equipments"`
	Difficulty       string   `json:"difficulty"`
	Instructions     []string `json:"instructions"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	LibraryID        string    `json:"libraryId,omitempty"`
	Name             string    `json:"name"`
	BodyParts        []string  `json:"bodyParts,omitempty"`
	TargetMuscles    []string  `json:"targetMuscles,omitempty"`
	SecondaryMuscles []string  `json:"secondaryMuscles,omitempty"`
	Equipments       []string  `json:"equipments,omitempty"`
	Difficulty       string    `json:"difficulty,omitempty"`
	Instructions     []string  `json:"instructions,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:               ex.ID.Hex(),
		UserID:           ex.UserID.Hex(),
		LibraryID:        ex.LibraryID,
		Name:             ex.Name,
		BodyParts:        ex.BodyParts,
		TargetMuscles:    ex.TargetMuscles,
		SecondaryMuscles: ex.SecondaryMuscles,
		Equipments:       ex.Equipments,
		Difficulty:       ex.Difficulty,
		Instructions:     ex.Instructions,
		CreatedAt:        ex.CreatedAt,
		UpdatedAt:        ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// CreateExercise godoc
// @Summary Create a custom exercise
// @Tags Exercises
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), userID, service.ExerciseInput{
		Name:             req.Name,
		BodyParts:        req.BodyParts,
		TargetMuscles:    req.TargetMuscles,
		SecondaryMuscles: req.SecondaryMuscles,
		Equipments:       req.Equipments,
		Difficulty:       req.Difficulty,
		Instructions:     req.Instructions,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetExercises godoc
// @Summary List the user's exercises, custom and imported
// @Tags Exercises
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	exercises, err := h.exerciseService.GetExercisesByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}
