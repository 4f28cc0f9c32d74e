package api

import (
	"errors"
	"net/http"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler serves routines and logged workout sessions.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type CreateRoutineRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	ExerciseIDs []string `json:"exerciseIds"`
}

type RoutineResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ExerciseIDs []string  `json:"exerciseIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

type WorkoutSetRequest struct {
	Reps   *int     `json:"reps"`
	Weight *float64 `json:"weight"`
}

type SetGroupRequest struct {
	ExerciseID string              `json:"exerciseId" binding:"required"`
	Sets       []WorkoutSetRequest `json:"sets" binding:"dive"`
}

// LogWorkoutRequest records a session. Omitting endedAt logs a session still in progress.
type LogWorkoutRequest struct {
	RoutineID *string           `json:"routineId"`
	Name      string            `json:"name"`
	StartedAt time.Time         `json:"startedAt" binding:"required"`
	EndedAt   *time.Time        `json:"endedAt"`
	SetGroups []SetGroupRequest `json:"setGroups" binding:"dive"`
	Notes     string            `json:"notes"`
}

type SetGroupResponse struct {
	ExerciseID string              `json:"exerciseId"`
	Sets       []WorkoutSetRequest `json:"sets"`
}

type WorkoutResponse struct {
	ID        string             `json:"id"`
	RoutineID *string            `json:"routineId,omitempty"`
	Name      string             `json:"name"`
	StartedAt time.Time          `json:"startedAt"`
	EndedAt   *time.Time         `json:"endedAt,omitempty"`
	Completed bool               `json:"completed"`
	SetGroups []SetGroupResponse `json:"setGroups"`
	Notes     string             `json:"notes,omitempty"`
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}

func MapRoutineToResponse(r *domain.Routine) RoutineResponse {
	return RoutineResponse{
		ID:          r.ID.Hex(),
		Name:        r.Name,
		Description: r.Description,
		ExerciseIDs: hexIDs(r.ExerciseIDs),
		CreatedAt:   r.CreatedAt,
	}
}

func MapWorkoutToResponse(w *domain.WorkoutSession) WorkoutResponse {
	resp := WorkoutResponse{
		ID:        w.ID.Hex(),
		Name:      w.Name,
		StartedAt: w.StartedAt,
		EndedAt:   w.EndedAt,
		Completed: w.IsCompleted(),
		SetGroups: make([]SetGroupResponse, len(w.SetGroups)),
		Notes:     w.Notes,
	}
	if w.RoutineID != nil {
		id := w.RoutineID.Hex()
		resp.RoutineID = &id
	}
	for i, g := range w.SetGroups {
		sets := make([]WorkoutSetRequest, len(g.Sets))
		for j, s := range g.Sets {
			sets[j] = WorkoutSetRequest{Reps: s.Reps, Weight: s.Weight}
		}
		resp.SetGroups[i] = SetGroupResponse{ExerciseID: g.ExerciseID.Hex(), Sets: sets}
	}
	return resp
}

// --- Handlers ---

// CreateRoutine godoc
// @Summary Create a routine template
// @Tags Routines
// @Security BearerAuth
// @Success 201 {object} RoutineResponse
// @Router /routines [post]
func (h *WorkoutHandler) CreateRoutine(c *gin.Context) {
	var req CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	exerciseIDs := make([]primitive.ObjectID, 0, len(req.ExerciseIDs))
	for _, raw := range req.ExerciseIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format: "+raw)
			return
		}
		exerciseIDs = append(exerciseIDs, id)
	}

	routine, err := h.workoutService.CreateRoutine(c.Request.Context(), userID, req.Name, req.Description, exerciseIDs)
	if err != nil {
		abortWithWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapRoutineToResponse(routine))
}

// GetRoutines godoc
// @Summary List the user's routines
// @Tags Routines
// @Security BearerAuth
// @Success 200 {array} RoutineResponse
// @Router /routines [get]
func (h *WorkoutHandler) GetRoutines(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	routines, err := h.workoutService.GetRoutines(c.Request.Context(), userID)
	if err != nil {
		abortWithWorkoutError(c, err)
		return
	}
	resp := make([]RoutineResponse, len(routines))
	for i := range routines {
		resp[i] = MapRoutineToResponse(&routines[i])
	}
	c.JSON(http.StatusOK, resp)
}

// LogWorkout godoc
// @Summary Log a workout session
// @Tags Workouts
// @Security BearerAuth
// @Param workout body LogWorkoutRequest true "Session"
// @Success 201 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Validation error"
// @Router /workouts [post]
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session := &domain.WorkoutSession{
		Name:      req.Name,
		StartedAt: req.StartedAt,
		EndedAt:   req.EndedAt,
		Notes:     req.Notes,
		SetGroups: make([]domain.SetGroup, 0, len(req.SetGroups)),
	}
	if req.RoutineID != nil {
		id, err := primitive.ObjectIDFromHex(*req.RoutineID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid routine ID format.")
			return
		}
		session.RoutineID = &id
	}
	for _, g := range req.SetGroups {
		exerciseID, err := primitive.ObjectIDFromHex(g.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format: "+g.ExerciseID)
			return
		}
		group := domain.SetGroup{ExerciseID: exerciseID, Sets: make([]domain.WorkoutSet, len(g.Sets))}
		for i, s := range g.Sets {
			group.Sets[i] = domain.WorkoutSet{Reps: s.Reps, Weight: s.Weight}
		}
		session.SetGroups = append(session.SetGroups, group)
	}

	logged, err := h.workoutService.LogSession(c.Request.Context(), userID, session)
	if err != nil {
		abortWithWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(logged))
}

// GetWorkouts godoc
// @Summary List the user's workout sessions, newest first
// @Tags Workouts
// @Security BearerAuth
// @Success 200 {array} WorkoutResponse
// @Router /workouts [get]
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessions, err := h.workoutService.ListSessions(c.Request.Context(), userID)
	if err != nil {
		abortWithWorkoutError(c, err)
		return
	}
	resp := make([]WorkoutResponse, len(sessions))
	for i := range sessions {
		resp[i] = MapWorkoutToResponse(&sessions[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetWorkout godoc
// @Summary Get one workout session
// @Tags Workouts
// @Security BearerAuth
// @Success 200 {object} WorkoutResponse
// @Failure 404 {object} gin.H
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	session, err := h.workoutService.GetSession(c.Request.Context(), userID, workoutID)
	if err != nil {
		abortWithWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(session))
}

func abortWithWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound), errors.Is(err, service.ErrRoutineNotFound):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
