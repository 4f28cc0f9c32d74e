package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExerciseService(t *testing.T) {
	repo := &fakeExerciseRepo{}
	svc := NewExerciseService(repo)
	ctx := context.Background()
	owner, other := primitive.NewObjectID(), primitive.NewObjectID()

	if _, err := svc.CreateExercise(ctx, owner, ExerciseInput{Name: "   "}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed for blank name, got %v", err)
	}

	created, err := svc.CreateExercise(ctx, owner, ExerciseInput{Name: " Landmine Press ", Equipments: []string{"barbell"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Landmine Press" || created.UserID != owner || created.ID.IsZero() {
		t.Errorf("created = %+v", created)
	}

	got, err := svc.GetExerciseByID(ctx, owner, created.ID)
	if err != nil || got.ID != created.ID {
		t.Errorf("get own exercise: %v, %+v", err, got)
	}
	if _, err := svc.GetExerciseByID(ctx, other, created.ID); !errors.Is(err, ErrExerciseAccessDenied) {
		t.Errorf("expected ErrExerciseAccessDenied, got %v", err)
	}
	if _, err := svc.GetExerciseByID(ctx, owner, primitive.NewObjectID()); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("expected ErrExerciseNotFound, got %v", err)
	}

	list, err := svc.GetExercisesByUser(ctx, other)
	if err != nil || len(list) != 0 {
		t.Errorf("other user's list = %v, %v", list, err)
	}
	if list, _ := svc.GetExercisesByUser(ctx, owner); len(list) != 1 {
		t.Errorf("owner's list = %v", list)
	}
}
