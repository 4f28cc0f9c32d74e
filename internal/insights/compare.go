package insights

import (
	"time"

	"alcyxob/workout-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompareLatest compares the most recent completed session with the previous completed session
// of the same routine. It returns nil when there are no completed sessions. A session without a
// routine, or the first session of a routine, is reported as FirstTime with zero deltas.
func CompareLatest(sessions []domain.WorkoutSession) *domain.SessionComparison {
	completed := completedChronological(sessions)
	if len(completed) == 0 {
		return nil
	}
	latest := completed[len(completed)-1]
	current := SummarizeSession(latest)

	var previous *domain.SessionComputation
	if latest.RoutineID != nil {
		for i := len(completed) - 2; i >= 0; i-- {
			if r := completed[i].RoutineID; r != nil && *r == *latest.RoutineID {
				p := SummarizeSession(completed[i])
				previous = &p
				break
			}
		}
	}

	out := &domain.SessionComparison{
		WorkoutID: latest.ID,
		FirstTime: previous == nil,
		Exercises: make([]domain.ExerciseDelta, 0, len(current.Exercises)),
	}
	prevByExercise := make(map[primitive.ObjectID]domain.ExerciseSessionSummary)
	if previous != nil {
		id := previous.WorkoutID
		out.PreviousWorkoutID = &id
		for _, ex := range previous.Exercises {
			prevByExercise[ex.ExerciseID] = ex
		}
	}

	for _, ex := range current.Exercises {
		delta := domain.ExerciseDelta{ExerciseID: ex.ExerciseID, Current: ex}
		if previous != nil {
			// an exercise missing from the previous session compares against zero
			p := prevByExercise[ex.ExerciseID]
			delta.AverageLoadDelta = round2(ex.AverageLoad - p.AverageLoad)
			delta.TotalRepsDelta = ex.TotalReps - p.TotalReps
			delta.VolumeDelta = round2(ex.Volume - p.Volume)
			if _, ok := prevByExercise[ex.ExerciseID]; ok {
				delta.Previous = &p
			}
		}
		out.Exercises = append(out.Exercises, delta)
	}
	return out
}

// ComputeConsistency reports the current daily streak, days since the last session and the mean
// sessions per week over the last four ISO weeks, all in opts.Location.
func ComputeConsistency(sessions []domain.WorkoutSession, opts Options) domain.Consistency {
	opts = opts.withDefaults()
	completed := completedChronological(sessions)

	days := make(map[time.Time]struct{}, len(completed))
	for _, s := range completed {
		days[civilDay(s.StartedAt, opts.Location)] = struct{}{}
	}

	today := civilDay(opts.Now, opts.Location)
	var out domain.Consistency
	for d := today; ; d = d.AddDate(0, 0, -1) {
		if _, ok := days[d]; !ok {
			break
		}
		out.CurrentStreak++
	}

	if len(completed) > 0 {
		var last time.Time
		for d := range days {
			if d.After(last) {
				last = d
			}
		}
		since := max(int(today.Sub(last).Hours()/24), 0)
		out.DaysSinceLastSession = &since
	}

	buckets := weekBuckets(completed, opts.Location)
	current := weekStart(opts.Now, opts.Location)
	var count int
	for i := 0; i < consistencyWeeks; i++ {
		count += buckets[weekKey(current.AddDate(0, 0, -daysPerWeek*i))].count
	}
	out.AverageSessionsPerWeek = round2(float64(count) / consistencyWeeks)
	return out
}

// civilDay maps t to its calendar date in loc, expressed as UTC midnight so days subtract exactly.
func civilDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
