package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSession is one logged workout. A session without EndedAt is still in progress.
type WorkoutSession struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"userId" json:"userId"`
	RoutineID *primitive.ObjectID `bson:"routineId,omitempty" json:"routineId,omitempty"`
	Name      string              `bson:"name" json:"name"`
	StartedAt time.Time           `bson:"startedAt" json:"startedAt"`
	EndedAt   *time.Time          `bson:"endedAt,omitempty" json:"endedAt,omitempty"`
	SetGroups []SetGroup          `bson:"setGroups" json:"setGroups"`
	Notes     string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsCompleted reports whether the session has an end timestamp.
func (w *WorkoutSession) IsCompleted() bool {
	return w.EndedAt != nil
}

// SetGroup is the ordered list of sets performed for one exercise within a session.
type SetGroup struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       []WorkoutSet       `bson:"sets" json:"sets"`
}

// WorkoutSet records one set. Reps and Weight are optional (e.g. timed holds have neither).
type WorkoutSet struct {
	Reps   *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
}
