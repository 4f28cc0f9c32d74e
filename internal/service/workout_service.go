package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrWorkoutNotFound = errors.New("workout session not found")
	ErrRoutineNotFound = errors.New("routine not found")
)

// WorkoutService manages routines and logged workout sessions.
type WorkoutService interface {
	CreateRoutine(ctx context.Context, userID primitive.ObjectID, name, description string, exerciseIDs []primitive.ObjectID) (*domain.Routine, error)
	GetRoutines(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error)
	LogSession(ctx context.Context, userID primitive.ObjectID, session *domain.WorkoutSession) (*domain.WorkoutSession, error)
	GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	ListSessions(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
}

type workoutService struct {
	routineRepo  repository.RoutineRepository
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

func NewWorkoutService(routineRepo repository.RoutineRepository, workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		routineRepo:  routineRepo,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreateRoutine stores a routine template. Every exercise must belong to the user.
func (s *workoutService) CreateRoutine(ctx context.Context, userID primitive.ObjectID, name, description string, exerciseIDs []primitive.ObjectID) (*domain.Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: routine name is required", ErrValidationFailed)
	}
	if err := s.checkExercises(ctx, userID, exerciseIDs); err != nil {
		return nil, err
	}

	routine := &domain.Routine{
		UserID:      userID,
		Name:        name,
		Description: description,
		ExerciseIDs: exerciseIDs,
	}
	id, err := s.routineRepo.Create(ctx, routine)
	if err != nil {
		return nil, err
	}
	routine.ID = id
	return routine, nil
}

func (s *workoutService) GetRoutines(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error) {
	return s.routineRepo.GetByUserID(ctx, userID)
}

// LogSession validates and stores a session. EndedAt, when set, must be after StartedAt; every
// set group must reference one of the user's exercises; reps may not be negative. Negative
// weights are stored as their absolute value.
func (s *workoutService) LogSession(ctx context.Context, userID primitive.ObjectID, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	if session.StartedAt.IsZero() {
		return nil, fmt.Errorf("%w: startedAt is required", ErrValidationFailed)
	}
	if session.EndedAt != nil && !session.EndedAt.After(session.StartedAt) {
		return nil, fmt.Errorf("%w: endedAt must be after startedAt", ErrValidationFailed)
	}

	if session.RoutineID != nil {
		routine, err := s.routineRepo.GetByID(ctx, *session.RoutineID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrRoutineNotFound
			}
			return nil, err
		}
		if routine.UserID != userID {
			return nil, ErrRoutineNotFound
		}
		if strings.TrimSpace(session.Name) == "" {
			session.Name = routine.Name
		}
	}
	if strings.TrimSpace(session.Name) == "" {
		session.Name = "Workout"
	}

	exerciseIDs := make([]primitive.ObjectID, 0, len(session.SetGroups))
	for gi := range session.SetGroups {
		group := &session.SetGroups[gi]
		if group.ExerciseID == primitive.NilObjectID {
			return nil, fmt.Errorf("%w: set group %d has no exercise", ErrValidationFailed, gi)
		}
		exerciseIDs = append(exerciseIDs, group.ExerciseID)
		for si := range group.Sets {
			set := &group.Sets[si]
			if set.Reps != nil && *set.Reps < 0 {
				return nil, fmt.Errorf("%w: set %d of group %d has negative reps", ErrValidationFailed, si, gi)
			}
			if set.Weight != nil {
				w := math.Abs(*set.Weight)
				set.Weight = &w
			}
		}
	}
	if err := s.checkExercises(ctx, userID, exerciseIDs); err != nil {
		return nil, err
	}

	session.UserID = userID
	id, err := s.workoutRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	return session, nil
}

func (s *workoutService) GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.workoutRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	// other users' sessions are reported as missing
	if session.UserID != userID {
		return nil, ErrWorkoutNotFound
	}
	return session, nil
}

func (s *workoutService) ListSessions(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	return s.workoutRepo.GetByUserID(ctx, userID)
}

// checkExercises verifies each distinct id names an exercise owned by userID.
func (s *workoutService) checkExercises(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) error {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		exercise, err := s.exerciseRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrExerciseNotFound, id.Hex())
			}
			return err
		}
		if exercise.UserID != userID {
			return fmt.Errorf("%w: %s", ErrExerciseNotFound, id.Hex())
		}
	}
	return nil
}
