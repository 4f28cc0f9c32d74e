// internal/domain/routine.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routine is a reusable workout template. Sessions started from a routine carry its ID,
// which is what session-over-session comparison keys on.
type Routine struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID   `bson:"userId" json:"userId"`
	Name        string               `bson:"name" json:"name"` // e.g., "Push Day"
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	ExerciseIDs []primitive.ObjectID `bson:"exerciseIds,omitempty" json:"exerciseIds,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
