// internal/repository/mongo/workout_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workout_sessions"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout session.
func (r *mongoWorkoutRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.UserID == primitive.NilObjectID || session.StartedAt.IsZero() {
		return primitive.NilObjectID, errors.New("workout session requires userId and startedAt")
	}
	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout session by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByUserID retrieves all sessions of a user, newest first.
func (r *mongoWorkoutRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	return r.find(ctx, bson.M{"userId": userID}, -1)
}

// GetCompletedByUserID retrieves sessions that have an end timestamp, oldest first.
func (r *mongoWorkoutRepository) GetCompletedByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	return r.find(ctx, completedSessionsFilter(userID), 1)
}

// completedSessionsFilter matches a user's sessions whose endedAt is set and not null.
func completedSessionsFilter(userID primitive.ObjectID) bson.M {
	return bson.M{
		"userId":  userID,
		"endedAt": bson.M{"$exists": true, "$ne": nil},
	}
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M, order int) ([]domain.WorkoutSession, error) {
	sessions := []domain.WorkoutSession{}
	findOptions := options.Find().SetSort(bson.D{{Key: "startedAt", Value: order}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func workoutIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startedAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "routineId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
}
