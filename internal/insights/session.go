package insights

import (
	"alcyxob/workout-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SummarizeSession totals one session. Sets with reps but no valid weight count toward reps
// only. Set groups repeating an exercise are merged in order of first appearance.
func SummarizeSession(s domain.WorkoutSession) domain.SessionComputation {
	out := domain.SessionComputation{
		WorkoutID: s.ID,
		RoutineID: s.RoutineID,
		Name:      s.Name,
		StartedAt: s.StartedAt,
		Exercises: []domain.ExerciseSessionSummary{},
	}
	if s.EndedAt != nil {
		out.EndedAt = *s.EndedAt
		if d := s.EndedAt.Sub(s.StartedAt); d > 0 {
			out.DurationMinutes = int(d.Minutes())
		}
	}

	byExercise := make(map[primitive.ObjectID]int)
	for _, group := range s.SetGroups {
		idx, seen := byExercise[group.ExerciseID]
		if !seen {
			idx = len(out.Exercises)
			byExercise[group.ExerciseID] = idx
			out.Exercises = append(out.Exercises, domain.ExerciseSessionSummary{ExerciseID: group.ExerciseID})
		}
		ex := &out.Exercises[idx]
		for _, set := range group.Sets {
			ex.Sets++
			reps, load, ok := validSet(set)
			ex.TotalReps += reps
			if !ok {
				continue
			}
			ex.Volume += float64(reps) * load
			ex.BestLoad = max(ex.BestLoad, round2(load))
			ex.BestEstimatedOneRm = max(ex.BestEstimatedOneRm, EstimatedOneRepMax(load, reps))
		}
	}

	for i := range out.Exercises {
		ex := &out.Exercises[i]
		out.Volume += ex.Volume
		out.TotalReps += ex.TotalReps
		ex.Volume = round2(ex.Volume)
		ex.AverageLoad = averageLoad(ex.Volume, ex.TotalReps)
	}
	out.Volume = round2(out.Volume)
	out.AverageLoad = averageLoad(out.Volume, out.TotalReps)
	return out
}

func averageLoad(volume float64, totalReps int) float64 {
	if totalReps == 0 {
		return 0
	}
	return round2(volume / float64(totalReps))
}

// ExerciseProgress returns one point per completed session that includes exerciseID, oldest first.
func ExerciseProgress(sessions []domain.WorkoutSession, exerciseID primitive.ObjectID) []domain.ProgressPoint {
	points := []domain.ProgressPoint{}
	for _, s := range completedChronological(sessions) {
		summary := SummarizeSession(s)
		for _, ex := range summary.Exercises {
			if ex.ExerciseID == exerciseID {
				points = append(points, progressPoint(summary, ex))
				break
			}
		}
	}
	return points
}

func progressByExercise(summaries []domain.SessionComputation) map[string][]domain.ProgressPoint {
	out := make(map[string][]domain.ProgressPoint)
	for _, summary := range summaries {
		for _, ex := range summary.Exercises {
			key := ex.ExerciseID.Hex()
			out[key] = append(out[key], progressPoint(summary, ex))
		}
	}
	return out
}

func progressPoint(summary domain.SessionComputation, ex domain.ExerciseSessionSummary) domain.ProgressPoint {
	return domain.ProgressPoint{
		WorkoutID:          summary.WorkoutID,
		Date:               summary.StartedAt,
		BestLoad:           ex.BestLoad,
		BestEstimatedOneRm: ex.BestEstimatedOneRm,
		Volume:             ex.Volume,
		TotalReps:          ex.TotalReps,
	}
}
