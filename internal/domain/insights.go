package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrType names the running-best tracker that produced a personal record.
type PrType string

const (
	PrLoad           PrType = "load"
	PrRepsAtLoad     PrType = "reps_at_load"
	PrEstimatedOneRm PrType = "estimated_one_rm"
)

// PrEvent is a personal record achieved by one set.
// Value is the load for PrLoad, the rep count for PrRepsAtLoad and the estimate for PrEstimatedOneRm.
type PrEvent struct {
	WorkoutID  primitive.ObjectID `json:"workoutId"`
	ExerciseID primitive.ObjectID `json:"exerciseId"`
	Type       PrType             `json:"type"`
	Value      float64            `json:"value"`
	Load       float64            `json:"load"`
	Reps       int                `json:"reps"`
	AchievedAt time.Time          `json:"achievedAt"`
}

// WorkoutSetSample is a flattened set used by the aggregator.
type WorkoutSetSample struct {
	WorkoutID  primitive.ObjectID
	ExerciseID primitive.ObjectID
	Reps       int
	Load       float64
	At         time.Time
}

type ExerciseSessionSummary struct {
	ExerciseID         primitive.ObjectID `json:"exerciseId"`
	Sets               int                `json:"sets"`
	TotalReps          int                `json:"totalReps"`
	Volume             float64            `json:"volume"`
	AverageLoad        float64            `json:"averageLoad"`
	BestLoad           float64            `json:"bestLoad"`
	BestEstimatedOneRm float64            `json:"bestEstimatedOneRm"`
}

// SessionComputation is the derived summary of one completed session.
type SessionComputation struct {
	WorkoutID       primitive.ObjectID       `json:"workoutId"`
	RoutineID       *primitive.ObjectID      `json:"routineId,omitempty"`
	Name            string                   `json:"name"`
	StartedAt       time.Time                `json:"startedAt"`
	EndedAt         time.Time                `json:"endedAt"`
	DurationMinutes int                      `json:"durationMinutes"`
	Volume          float64                  `json:"volume"`
	TotalReps       int                      `json:"totalReps"`
	AverageLoad     float64                  `json:"averageLoad"`
	Exercises       []ExerciseSessionSummary `json:"exercises"`
}

// WeekVolume aggregates one ISO week. RollingAverage covers this week and the two before it.
type WeekVolume struct {
	WeekKey        string    `json:"weekKey"`
	WeekStart      time.Time `json:"weekStart"`
	TotalVolume    float64   `json:"totalVolume"`
	WorkoutCount   int       `json:"workoutCount"`
	RollingAverage float64   `json:"rollingAverage"`
}

// WeeklyVolumeReport is the trailing twelve-week slice, oldest first.
type WeeklyVolumeReport struct {
	Weeks []WeekVolume `json:"weeks"`
	// WeekOverWeekChange is the percent change between the last two weeks; nil when undefined.
	WeekOverWeekChange *float64 `json:"weekOverWeekChange,omitempty"`
}

type ExerciseDelta struct {
	ExerciseID       primitive.ObjectID      `json:"exerciseId"`
	AverageLoadDelta float64                 `json:"averageLoadDelta"`
	TotalRepsDelta   int                     `json:"totalRepsDelta"`
	VolumeDelta      float64                 `json:"volumeDelta"`
	Current          ExerciseSessionSummary  `json:"current"`
	Previous         *ExerciseSessionSummary `json:"previous,omitempty"`
}

// SessionComparison compares the latest session with the previous one from the same routine.
type SessionComparison struct {
	WorkoutID         primitive.ObjectID  `json:"workoutId"`
	PreviousWorkoutID *primitive.ObjectID `json:"previousWorkoutId,omitempty"`
	FirstTime         bool                `json:"firstTime"`
	Exercises         []ExerciseDelta     `json:"exercises"`
}

type Consistency struct {
	CurrentStreak          int     `json:"currentStreak"`
	DaysSinceLastSession   *int    `json:"daysSinceLastSession,omitempty"`
	AverageSessionsPerWeek float64 `json:"averageSessionsPerWeek"`
}

// ProgressPoint is one session's contribution to an exercise's progress series.
type ProgressPoint struct {
	WorkoutID          primitive.ObjectID `json:"workoutId"`
	Date               time.Time          `json:"date"`
	BestLoad           float64            `json:"bestLoad"`
	BestEstimatedOneRm float64            `json:"bestEstimatedOneRm"`
	Volume             float64            `json:"volume"`
	TotalReps          int                `json:"totalReps"`
}

// WorkoutInsightsState bundles every derived view over a user's completed sessions.
// Map keys are hex ObjectIDs.
type WorkoutInsightsState struct {
	Sessions         []SessionComputation       `json:"sessions"`
	PersonalRecords  []PrEvent                  `json:"personalRecords"`
	RecordsByWorkout map[string][]PrEvent       `json:"recordsByWorkout"`
	Weekly           WeeklyVolumeReport         `json:"weekly"`
	Comparison       *SessionComparison         `json:"comparison,omitempty"`
	Consistency      Consistency                `json:"consistency"`
	Progress         map[string][]ProgressPoint `json:"progress"`
}
