package insights

import (
	"alcyxob/workout-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bests is the running state of one exercise's three record trackers.
type bests struct {
	load       float64
	hasLoad    bool
	oneRm      float64
	hasOneRm   bool
	repsAtLoad map[float64]int
}

// DetectPersonalRecords replays completed sessions set by set in chronological order and emits
// an event whenever a tracker improves. Loads are compared after rounding to two decimals.
// The first loaded set of an exercise sets its load and estimated 1RM records; a reps-at-load
// record needs an earlier set at the same load to beat.
func DetectPersonalRecords(sessions []domain.WorkoutSession) []domain.PrEvent {
	events := []domain.PrEvent{}
	state := make(map[primitive.ObjectID]*bests)

	for _, s := range completedChronological(sessions) {
		for _, sample := range samples(s) {
			b, ok := state[sample.ExerciseID]
			if !ok {
				b = &bests{repsAtLoad: make(map[float64]int)}
				state[sample.ExerciseID] = b
			}
			event := func(t domain.PrType, value float64) domain.PrEvent {
				return domain.PrEvent{
					WorkoutID:  sample.WorkoutID,
					ExerciseID: sample.ExerciseID,
					Type:       t,
					Value:      value,
					Load:       sample.Load,
					Reps:       sample.Reps,
					AchievedAt: sample.At,
				}
			}

			if !b.hasLoad || sample.Load > b.load {
				b.load, b.hasLoad = sample.Load, true
				events = append(events, event(domain.PrLoad, sample.Load))
			}

			prev, seen := b.repsAtLoad[sample.Load]
			if seen && sample.Reps > prev {
				events = append(events, event(domain.PrRepsAtLoad, float64(sample.Reps)))
			}
			if !seen || sample.Reps > prev {
				b.repsAtLoad[sample.Load] = sample.Reps
			}

			oneRm := EstimatedOneRepMax(sample.Load, sample.Reps)
			if !b.hasOneRm || oneRm > b.oneRm {
				b.oneRm, b.hasOneRm = oneRm, true
				events = append(events, event(domain.PrEstimatedOneRm, oneRm))
			}
		}
	}
	return events
}

// GroupRecordsByWorkout indexes events by hex workout id, keeping chronological order per workout.
func GroupRecordsByWorkout(events []domain.PrEvent) map[string][]domain.PrEvent {
	out := make(map[string][]domain.PrEvent)
	for _, e := range events {
		key := e.WorkoutID.Hex()
		out[key] = append(out[key], e)
	}
	return out
}

// samples flattens a session into loaded sets with their load rounded to two decimals.
func samples(s domain.WorkoutSession) []domain.WorkoutSetSample {
	var out []domain.WorkoutSetSample
	for _, group := range s.SetGroups {
		for _, set := range group.Sets {
			reps, load, ok := validSet(set)
			if !ok {
				continue
			}
			out = append(out, domain.WorkoutSetSample{
				WorkoutID:  s.ID,
				ExerciseID: group.ExerciseID,
				Reps:       reps,
				Load:       round2(load),
				At:         s.StartedAt,
			})
		}
	}
	return out
}
