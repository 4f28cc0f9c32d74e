package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to this exercise")
	ErrValidationFailed     = errors.New("validation failed")
)

// ExerciseInput carries the user-editable fields of a custom exercise.
type ExerciseInput struct {
	Name             string
	BodyParts        []string
	TargetMuscles    []string
	SecondaryMuscles []string
	Equipments       []string
	Difficulty       string
	Instructions     []string
}

// ExerciseService manages the exercises a user logs sets against.
type ExerciseService interface {
	CreateExercise(ctx context.Context, userID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	GetExercisesByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise stores a custom exercise owned by the user.
func (s *exerciseService) CreateExercise(ctx context.Context, userID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidationFailed)
	}
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create an exercise")
	}

	exercise := &domain.Exercise{
		UserID:           userID,
		Name:             name,
		BodyParts:        input.BodyParts,
		TargetMuscles:    input.TargetMuscles,
		SecondaryMuscles: input.SecondaryMuscles,
		Equipments:       input.Equipments,
		Difficulty:       input.Difficulty,
		Instructions:     input.Instructions,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// GetExerciseByID retrieves a single exercise, enforcing ownership.
func (s *exerciseService) GetExerciseByID(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.UserID != userID {
		return nil, ErrExerciseAccessDenied
	}
	return exercise, nil
}

// GetExercisesByUser retrieves all exercises of a user, custom and imported.
func (s *exerciseService) GetExercisesByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.exerciseRepo.GetByUserID(ctx, userID)
}
