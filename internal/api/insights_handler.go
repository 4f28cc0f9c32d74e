package api

import (
	"net/http"

	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// InsightsHandler serves training analytics. Responses are the computed domain views.
type InsightsHandler struct {
	insightsService service.InsightsService
}

func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// GetInsights godoc
// @Summary All insight views over the user's completed sessions
// @Tags Insights
// @Security BearerAuth
// @Success 200 {object} domain.WorkoutInsightsState
// @Router /insights [get]
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	state, err := h.insightsService.Compute(c.Request.Context(), userID)
	if err != nil {
		abortWithWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetExerciseProgress godoc
// @Summary Per-session progress of one exercise
// @Tags Insights
// @Security BearerAuth
// @Success 200 {array} domain.ProgressPoint
// @Router /insights/exercises/{exerciseId}/progress [get]
func (h *InsightsHandler) GetExerciseProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}
	points, err := h.insightsService.ExerciseProgress(c.Request.Context(), userID, exerciseID)
	if err != nil {
		abortWithWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetWorkoutRecords godoc
// @Summary Personal records set during one workout
// @Tags Insights
// @Security BearerAuth
// @Success 200 {array} domain.PrEvent
// @Failure 404 {object} gin.H
// @Router /insights/workouts/{workoutId}/records [get]
func (h *InsightsHandler) GetWorkoutRecords(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "workoutId")
	if !ok {
		return
	}
	records, err := h.insightsService.PersonalRecords(c.Request.Context(), userID, workoutID)
	if err != nil {
		abortWithWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
