// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a user-visible exercise. Library imports keep a pointer back to the catalog entry
// so a second import of the same entry resolves to the existing record.
type Exercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	LibraryID string             `bson:"libraryId,omitempty" json:"libraryId,omitempty"`
	Name      string             `bson:"name" json:"name"`

	BodyParts        []string `bson:"bodyParts,omitempty" json:"bodyParts,omitempty"`
	TargetMuscles    []string `bson:"targetMuscles,omitempty" json:"targetMuscles,omitempty"`
	SecondaryMuscles []string `bson:"secondaryMuscles,omitempty" json:"secondaryMuscles,omitempty"`
	Equipments       []string `bson:"equipments,omitempty" json:"equipments,omitempty"`
	Difficulty       string   `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Instructions     []string `bson:"instructions,omitempty" json:"instructions,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
