package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

type fakeAuth struct {
	service.AuthService
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if email == "taken@example.com" {
		return nil, service.ErrUserAlreadyExists
	}
	return &domain.User{ID: primitive.NewObjectID(), Name: name, Email: email, Role: domain.RoleAthlete}, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*service.Session, error) {
	if password != "correct-horse" {
		return nil, service.ErrAuthenticationFailed
	}
	return &service.Session{
		Token:     "signed",
		ExpiresAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		User:      &domain.User{ID: primitive.NewObjectID(), Email: email, Role: domain.RoleAthlete},
	}, nil
}

func (f *fakeAuth) Profile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	return &domain.User{ID: userID, Name: "Ada", Role: domain.RoleAthlete}, nil
}

type fakeLibrary struct {
	service.LibraryService

	gotQuery   string
	gotFilters domain.SearchFilters
	gotSort    domain.SortOption
	gotLimit   int
	err        error
	imported   map[string]bool
}

func (f *fakeLibrary) Search(ctx context.Context, query string, filters domain.SearchFilters, sortBy domain.SortOption, limit int) (*service.LibrarySearchResult, error) {
	f.gotQuery, f.gotFilters, f.gotSort, f.gotLimit = query, filters, sortBy, limit
	if f.err != nil {
		return nil, f.err
	}
	return &service.LibrarySearchResult{
		Exercises:   []domain.CatalogEntry{{ID: "0001", Name: "barbell bench press"}},
		Suggestions: []string{},
		Total:       3,
	}, nil
}

func (f *fakeLibrary) GetEntry(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id != "0001" {
		return nil, service.ErrLibraryExerciseNotFound
	}
	return &domain.CatalogEntry{ID: "0001", Name: "ez-bar curl", HeroAsset: "hero.jpg"}, nil
}

func (f *fakeLibrary) MediaURLs(ctx context.Context, entry *domain.CatalogEntry) (*service.MediaURLs, error) {
	return &service.MediaURLs{Hero: "https://media.example/" + entry.HeroAsset, Media: []string{}}, nil
}

func (f *fakeLibrary) Facets(ctx context.Context) (*domain.CatalogMetadata, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.CatalogMetadata{Count: 1, BodyParts: []string{"chest"}}, nil
}

func (f *fakeLibrary) ImportExercise(ctx context.Context, userID primitive.ObjectID, libraryID string) (*domain.Exercise, bool, error) {
	if libraryID != "0001" {
		return nil, false, service.ErrLibraryExerciseNotFound
	}
	key := userID.Hex() + libraryID
	created := !f.imported[key]
	f.imported[key] = true
	return &domain.Exercise{ID: primitive.NewObjectID(), UserID: userID, LibraryID: libraryID, Name: "Barbell Bench Press"}, created, nil
}

type fakeWorkouts struct {
	service.WorkoutService
	logged *domain.WorkoutSession
	err    error
}

func (f *fakeWorkouts) LogSession(ctx context.Context, userID primitive.ObjectID, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	session.ID = primitive.NewObjectID()
	session.UserID = userID
	f.logged = session
	return session, nil
}

func (f *fakeWorkouts) GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	return nil, service.ErrWorkoutNotFound
}

type fakeInsights struct {
	service.InsightsService
}

func (f *fakeInsights) Compute(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutInsightsState, error) {
	return &domain.WorkoutInsightsState{Sessions: []domain.SessionComputation{}, PersonalRecords: []domain.PrEvent{}}, nil
}

func (f *fakeInsights) PersonalRecords(ctx context.Context, userID, workoutID primitive.ObjectID) ([]domain.PrEvent, error) {
	return nil, service.ErrWorkoutNotFound
}

type testServer struct {
	router   *gin.Engine
	library  *fakeLibrary
	workouts *fakeWorkouts
	userID   primitive.ObjectID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := &testServer{
		router:   gin.New(),
		library:  &fakeLibrary{imported: map[string]bool{}},
		workouts: &fakeWorkouts{},
		userID:   primitive.NewObjectID(),
	}
	s.router.Use(RequestLogger(logger.Nop()))
	SetupRoutes(s.router, testSecret, Services{
		Auth:     &fakeAuth{},
		Library:  s.library,
		Workout:  s.workouts,
		Insights: &fakeInsights{},
	})
	return s
}

func signToken(t *testing.T, userID string, role domain.Role, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, s.userID.Hex(), domain.RoleAthlete, time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestPingAndRequestID(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if _, err := uuid.Parse(w.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("expected generated request id, got %q", w.Header().Get(RequestIDHeader))
	}

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != incoming {
		t.Errorf("expected incoming request id to be kept, got %q", got)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)
	uid := s.userID.Hex()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, uid, domain.RoleAthlete, time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"unknown role", "Bearer " + signToken(t, uid, domain.Role("trainer"), time.Now().Add(time.Hour)), http.StatusForbidden},
		{"athlete", "Bearer " + signToken(t, uid, domain.RoleAthlete, time.Now().Add(time.Hour)), http.StatusOK},
		{"coach", "Bearer " + signToken(t, uid, domain.RoleCoach, time.Now().Add(time.Hour)), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t)

	post := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	tests := []struct {
		name, path, body string
		want             int
	}{
		{"register", "/api/v1/auth/register", `{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`, http.StatusCreated},
		{"register short password", "/api/v1/auth/register", `{"name":"Ada","email":"ada@example.com","password":"short"}`, http.StatusBadRequest},
		{"register bad role", "/api/v1/auth/register", `{"name":"Ada","email":"ada@example.com","password":"correct-horse","role":"trainer"}`, http.StatusBadRequest},
		{"register taken", "/api/v1/auth/register", `{"name":"Ada","email":"taken@example.com","password":"correct-horse"}`, http.StatusConflict},
		{"login", "/api/v1/auth/login", `{"email":"ada@example.com","password":"correct-horse"}`, http.StatusOK},
		{"login wrong password", "/api/v1/auth/login", `{"email":"ada@example.com","password":"nope"}`, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := post(tt.path, tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}

	var me UserResponse
	w := s.do(t, http.MethodGet, "/api/v1/me", "")
	decode(t, w, &me)
	if me.ID != s.userID.Hex() || me.Name != "Ada" {
		t.Errorf("me = %+v", me)
	}
}

func TestLibrarySearch(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/library/exercises?q=bench&sort=Equipment&bodyPart=chest&bodyPart=shoulders&equipment=barbell&limit=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if s.library.gotQuery != "bench" || s.library.gotSort != domain.SortEquipment || s.library.gotLimit != 10 {
		t.Errorf("service got query=%q sort=%q limit=%d", s.library.gotQuery, s.library.gotSort, s.library.gotLimit)
	}
	if len(s.library.gotFilters.BodyParts) != 2 || len(s.library.gotFilters.Equipments) != 1 || len(s.library.gotFilters.Mechanics) != 0 {
		t.Errorf("filters = %+v", s.library.gotFilters)
	}

	var resp LibrarySearchResponse
	decode(t, w, &resp)
	if resp.Total != 3 || len(resp.Exercises) != 1 || resp.Exercises[0].DisplayName != "Barbell Bench Press" {
		t.Errorf("response = %+v", resp)
	}
	if resp.Suggestions == nil {
		t.Error("suggestions must serialize as an empty list")
	}
}

func TestLibraryErrors(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(t, http.MethodGet, "/api/v1/library/exercises?sort=popularity", ""); w.Code != http.StatusBadRequest {
		t.Errorf("unknown sort: status = %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/v1/library/exercises/9999", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d", w.Code)
	}

	s.library.err = fmt.Errorf("%w: bucket unreachable", service.ErrCatalogUnavailable)
	for _, path := range []string{"/api/v1/library/exercises?q=row", "/api/v1/library/exercises/0001", "/api/v1/library/facets"} {
		if w := s.do(t, http.MethodGet, path, ""); w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, w.Code)
		}
	}
}

func TestLibraryGetExercise(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/library/exercises/0001", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp LibraryExerciseResponse
	decode(t, w, &resp)
	if resp.DisplayName != "Ez-Bar Curl" || resp.HeroURL != "https://media.example/hero.jpg" {
		t.Errorf("response = %+v", resp)
	}
}

func TestLibraryImport(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/library/exercises/0001/import", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("first import: status = %d", w.Code)
	}
	var resp ImportExerciseResponse
	decode(t, w, &resp)
	if !resp.Created || resp.Exercise.LibraryID != "0001" || resp.Exercise.UserID != s.userID.Hex() {
		t.Errorf("response = %+v", resp)
	}

	if w := s.do(t, http.MethodPost, "/api/v1/library/exercises/0001/import", ""); w.Code != http.StatusOK {
		t.Errorf("second import: status = %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/v1/library/exercises/nope/import", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown entry: status = %d", w.Code)
	}
}

func TestLogWorkout(t *testing.T) {
	s := newTestServer(t)
	exerciseID := primitive.NewObjectID().Hex()
	body := fmt.Sprintf(`{
		"name": "Push",
		"startedAt": "2024-03-01T09:00:00Z",
		"endedAt": "2024-03-01T10:00:00Z",
		"setGroups": [{"exerciseId": %q, "sets": [{"reps": 5, "weight": 60}, {"reps": 8}]}]
	}`, exerciseID)

	w := s.do(t, http.MethodPost, "/api/v1/workouts", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var resp WorkoutResponse
	decode(t, w, &resp)
	if !resp.Completed || len(resp.SetGroups) != 1 || resp.SetGroups[0].ExerciseID != exerciseID {
		t.Errorf("response = %+v", resp)
	}
	if sets := s.workouts.logged.SetGroups[0].Sets; *sets[0].Weight != 60 || sets[1].Weight != nil {
		t.Errorf("sets = %+v", sets)
	}
}

func TestLogWorkoutErrors(t *testing.T) {
	s := newTestServer(t)
	valid := `{"startedAt": "2024-03-01T09:00:00Z"}`

	tests := []struct {
		name       string
		body       string
		serviceErr error
		want       int
	}{
		{"missing startedAt", `{}`, nil, http.StatusBadRequest},
		{"bad exercise id", `{"startedAt": "2024-03-01T09:00:00Z", "setGroups": [{"exerciseId": "xyz"}]}`, nil, http.StatusBadRequest},
		{"bad routine id", `{"startedAt": "2024-03-01T09:00:00Z", "routineId": "xyz"}`, nil, http.StatusBadRequest},
		{"service validation", valid, fmt.Errorf("%w: endedAt must be after startedAt", service.ErrValidationFailed), http.StatusBadRequest},
		{"unknown exercise", valid, service.ErrExerciseNotFound, http.StatusUnprocessableEntity},
		{"storage failure", valid, fmt.Errorf("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.workouts.err = tt.serviceErr
			if w := s.do(t, http.MethodPost, "/api/v1/workouts", tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestWorkoutAndInsightsLookups(t *testing.T) {
	s := newTestServer(t)
	missing := primitive.NewObjectID().Hex()

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/workouts/" + missing, http.StatusNotFound},
		{"/api/v1/workouts/not-an-id", http.StatusBadRequest},
		{"/api/v1/insights/workouts/" + missing + "/records", http.StatusNotFound},
		{"/api/v1/insights/exercises/not-an-id/progress", http.StatusBadRequest},
		{"/api/v1/insights", http.StatusOK},
	}
	for _, tt := range tests {
		if w := s.do(t, http.MethodGet, tt.path, ""); w.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.path, w.Code, tt.want)
		}
	}
}
