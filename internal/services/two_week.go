package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"school-run-planner/internal/domain"
)

// ErrNoFeasibleSchedule is returned when any weekday of the rotation
// has no coverable day schedule. The aggregation never returns a
// partial fortnight.
var ErrNoFeasibleSchedule = errors.New("no feasible two-week schedule")

// PlanTwoWeeks assembles the ten-weekday schedule for the fixed custody
// rotation starting at start (today when zero). Only the variable
// child's school choice is optimized, independently per day; custody is
// fixed input.
func PlanTwoWeeks(
	ctx context.Context,
	est *Estimator,
	family *domain.Family,
	start time.Time,
) (*domain.TwoWeekSchedule, error) {
	if start.IsZero() {
		start = time.Now()
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	days := make([]domain.DaySchedule, 0, 10)
	total := 0

	for week := 1; week <= 2; week++ {
		for weekday := 0; weekday < 5; weekday++ {
			date := start.AddDate(0, 0, (week-1)*7+weekday)

			day, ok := PlanDay(ctx, est, family, date, week, weekday)
			if !ok {
				return nil, fmt.Errorf(
					"plan two weeks: %w: no candidate for %s",
					ErrNoFeasibleSchedule, date.Format("2006-01-02"),
				)
			}

			days = append(days, day)
			total += day.TotalMinutes
		}
	}

	return &domain.TwoWeekSchedule{Days: days, TotalMinutes: total}, nil
}
