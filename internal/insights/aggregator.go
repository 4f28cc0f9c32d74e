// Package insights derives training analytics from completed workout sessions: per-session
// summaries, personal records, weekly volume, session comparison, consistency and per-exercise
// progress. Every function is pure over its input and safe for concurrent use.
package insights

import (
	"math"
	"slices"
	"time"

	"alcyxob/workout-tracker/internal/domain"
)

// Options fixes the clock and the timezone used for calendar-day and ISO-week bucketing.
type Options struct {
	Now      time.Time
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Compute builds every insight view over sessions. In-progress sessions are ignored.
func Compute(sessions []domain.WorkoutSession, opts Options) domain.WorkoutInsightsState {
	opts = opts.withDefaults()
	completed := completedChronological(sessions)

	summaries := make([]domain.SessionComputation, 0, len(completed))
	for i := range completed {
		summaries = append(summaries, SummarizeSession(completed[i]))
	}

	records := DetectPersonalRecords(completed)
	return domain.WorkoutInsightsState{
		Sessions:         summaries,
		PersonalRecords:  records,
		RecordsByWorkout: GroupRecordsByWorkout(records),
		Weekly:           WeeklyVolume(completed, opts),
		Comparison:       CompareLatest(completed),
		Consistency:      ComputeConsistency(completed, opts),
		Progress:         progressByExercise(summaries),
	}
}

// completedChronological drops sessions without an end timestamp and orders the rest by start
// time. Sessions starting at the same instant keep their input order.
func completedChronological(sessions []domain.WorkoutSession) []domain.WorkoutSession {
	out := make([]domain.WorkoutSession, 0, len(sessions))
	for i := range sessions {
		if sessions[i].IsCompleted() {
			out = append(out, sessions[i])
		}
	}
	slices.SortStableFunc(out, func(a, b domain.WorkoutSession) int {
		return a.StartedAt.Compare(b.StartedAt)
	})
	return out
}

// round2 rounds to two decimal places so float noise never registers as progress.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// validSet reports whether a set counts as a loaded set: positive reps and positive weight.
func validSet(set domain.WorkoutSet) (reps int, load float64, ok bool) {
	if set.Reps == nil || *set.Reps <= 0 {
		return 0, 0, false
	}
	if set.Weight == nil || *set.Weight <= 0 {
		return *set.Reps, 0, false
	}
	return *set.Reps, *set.Weight, true
}

// EstimatedOneRepMax is the Epley estimate load*(1+reps/30), with reps capped at 12, rounded to
// two decimals. Non-positive load or reps yield 0.
func EstimatedOneRepMax(load float64, reps int) float64 {
	if load <= 0 || reps <= 0 {
		return 0
	}
	return round2(load * (1 + float64(min(reps, 12))/30))
}
