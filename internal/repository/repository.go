package repository

import (
	"context"

	"alcyxob/workout-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	ErrConflict     = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository stores the exercises a user has created or imported from the library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	// GetByLibraryID returns ErrNotFound when the user has not imported that catalog entry.
	GetByLibraryID(ctx context.Context, userID primitive.ObjectID, libraryID string) (*domain.Exercise, error)
}

// RoutineRepository defines the interface for interacting with routine templates.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error)
}

// WorkoutRepository defines the interface for interacting with logged workout sessions.
type WorkoutRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	// GetByUserID returns the user's sessions, newest first.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	// GetCompletedByUserID returns sessions with an end timestamp, oldest first.
	GetCompletedByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
}
