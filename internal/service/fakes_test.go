package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]domain.User{}} }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return primitive.NilObjectID, repository.ErrConflict
	}
	user.ID = primitive.NewObjectID()
	r.users[user.Email] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises []domain.Exercise
}

func (r *fakeExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if exercise.LibraryID != "" {
		for _, e := range r.exercises {
			if e.UserID == exercise.UserID && e.LibraryID == exercise.LibraryID {
				return primitive.NilObjectID, repository.ErrConflict
			}
		}
	}
	exercise.ID = primitive.NewObjectID()
	r.exercises = append(r.exercises, *exercise)
	return exercise.ID, nil
}

func (r *fakeExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	return r.find(func(e domain.Exercise) bool { return e.ID == id })
}

func (r *fakeExerciseRepo) GetByLibraryID(ctx context.Context, userID primitive.ObjectID, libraryID string) (*domain.Exercise, error) {
	return r.find(func(e domain.Exercise) bool { return e.UserID == userID && e.LibraryID == libraryID })
}

func (r *fakeExerciseRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Exercise{}
	for _, e := range r.exercises {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) find(match func(domain.Exercise) bool) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exercises {
		if match(e) {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeRoutineRepo struct {
	routines []domain.Routine
}

func (r *fakeRoutineRepo) Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	routine.ID = primitive.NewObjectID()
	r.routines = append(r.routines, *routine)
	return routine.ID, nil
}

func (r *fakeRoutineRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	for _, rt := range r.routines {
		if rt.ID == id {
			return &rt, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRoutineRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error) {
	out := []domain.Routine{}
	for _, rt := range r.routines {
		if rt.UserID == userID {
			out = append(out, rt)
		}
	}
	return out, nil
}

type fakeWorkoutRepo struct {
	sessions []domain.WorkoutSession
	err      error
}

func (r *fakeWorkoutRepo) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	session.ID = primitive.NewObjectID()
	r.sessions = append(r.sessions, *session)
	return session.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	for _, s := range r.sessions {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	out := []domain.WorkoutSession{}
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b domain.WorkoutSession) int { return b.StartedAt.Compare(a.StartedAt) })
	return out, nil
}

func (r *fakeWorkoutRepo) GetCompletedByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.WorkoutSession{}
	for _, s := range r.sessions {
		if s.UserID == userID && s.EndedAt != nil {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b domain.WorkoutSession) int { return a.StartedAt.Compare(b.StartedAt) })
	return out, nil
}

type fakeCatalog struct {
	catalog *domain.Catalog
	err     error
	calls   int
}

func (f *fakeCatalog) EnsureLoaded(ctx context.Context) (*domain.Catalog, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.catalog, nil
}

type fakeStorage struct {
	failKey string
}

func (f *fakeStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if key == f.failKey {
		return "", errors.New("presign failed")
	}
	return "https://media.example/" + key + "?expires=" + expires.String(), nil
}

func strp(s string) *string { return &s }
func intp(v int) *int       { return &v }
func f64p(v float64) *float64 {
	return &v
}
