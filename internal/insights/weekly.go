package insights

import (
	"fmt"
	"time"

	"alcyxob/workout-tracker/internal/domain"
)

const (
	trailingWeeks    = 12
	rollingWindow    = 3
	consistencyWeeks = 4
	daysPerWeek      = 7
)

type weekBucket struct {
	volume float64
	count  int
}

// WeeklyVolume reports the twelve ISO weeks ending with the week containing opts.Now, oldest
// first. Weeks without sessions are present with zero volume.
func WeeklyVolume(sessions []domain.WorkoutSession, opts Options) domain.WeeklyVolumeReport {
	opts = opts.withDefaults()
	buckets := weekBuckets(completedChronological(sessions), opts.Location)
	current := weekStart(opts.Now, opts.Location)

	weeks := make([]domain.WeekVolume, 0, trailingWeeks)
	for i := trailingWeeks - 1; i >= 0; i-- {
		start := current.AddDate(0, 0, -daysPerWeek*i)
		b := buckets[weekKey(start)]

		var rolling float64
		for j := 0; j < rollingWindow; j++ {
			rolling += buckets[weekKey(start.AddDate(0, 0, -daysPerWeek*j))].volume
		}

		weeks = append(weeks, domain.WeekVolume{
			WeekKey:        weekKey(start),
			WeekStart:      start,
			TotalVolume:    round2(b.volume),
			WorkoutCount:   b.count,
			RollingAverage: round2(rolling / rollingWindow),
		})
	}

	report := domain.WeeklyVolumeReport{Weeks: weeks}
	last, prev := weeks[len(weeks)-1].TotalVolume, weeks[len(weeks)-2].TotalVolume
	if prev != 0 {
		change := round2((last - prev) / prev * 100)
		report.WeekOverWeekChange = &change
	}
	return report
}

func weekBuckets(completed []domain.WorkoutSession, loc *time.Location) map[string]weekBucket {
	buckets := make(map[string]weekBucket)
	for _, s := range completed {
		key := weekKey(s.StartedAt.In(loc))
		b := buckets[key]
		b.volume += SummarizeSession(s).Volume
		b.count++
		buckets[key] = b
	}
	return buckets
}

// weekStart returns local midnight of the Monday starting t's ISO week.
func weekStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	offset := (int(t.Weekday()) + 6) % daysPerWeek
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, loc)
}

// weekKey formats the ISO week of t as "2024-W07".
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
