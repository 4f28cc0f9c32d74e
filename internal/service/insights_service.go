package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/insights"
	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsightsService computes training analytics over a user's completed sessions.
type InsightsService interface {
	Compute(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutInsightsState, error)
	ExerciseProgress(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.ProgressPoint, error)
	PersonalRecords(ctx context.Context, userID, workoutID primitive.ObjectID) ([]domain.PrEvent, error)
}

type insightsService struct {
	workoutRepo repository.WorkoutRepository
	location    *time.Location
	now         func() time.Time
}

// NewInsightsService buckets days and weeks in loc.
func NewInsightsService(workoutRepo repository.WorkoutRepository, loc *time.Location) InsightsService {
	return &insightsService{
		workoutRepo: workoutRepo,
		location:    loc,
		now:         time.Now,
	}
}

func (s *insightsService) options() insights.Options {
	return insights.Options{Now: s.now(), Location: s.location}
}

func (s *insightsService) Compute(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutInsightsState, error) {
	sessions, err := s.workoutRepo.GetCompletedByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	state := insights.Compute(sessions, s.options())
	return &state, nil
}

func (s *insightsService) ExerciseProgress(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.ProgressPoint, error) {
	sessions, err := s.workoutRepo.GetCompletedByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return insights.ExerciseProgress(sessions, exerciseID), nil
}

// PersonalRecords returns the records set during one of the user's sessions. Records are
// evaluated against the user's full history, so an in-progress session has none.
func (s *insightsService) PersonalRecords(ctx context.Context, userID, workoutID primitive.ObjectID) ([]domain.PrEvent, error) {
	session, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrWorkoutNotFound
	}

	sessions, err := s.workoutRepo.GetCompletedByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	records := insights.GroupRecordsByWorkout(insights.DetectPersonalRecords(sessions))[workoutID.Hex()]
	if records == nil {
		records = []domain.PrEvent{}
	}
	return records, nil
}
