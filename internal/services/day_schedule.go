package services

import (
	"context"
	"slices"
	"time"

	"school-run-planner/internal/domain"
)

// CandidateDaySchedules builds one candidate day schedule per school
// option of the variable child, for the given date and custody-calendar
// cell (week 1..2, weekday index 0..4).
//
// Each candidate carries six slots: drop-off and pick-up for the
// variable child at the candidate school and for every fixed child at
// its own school, assigned to the custody parents for that half-day.
// A candidate is discarded when any slot falls outside the responsible
// parent's availability window.
func CandidateDaySchedules(
	ctx context.Context,
	est *Estimator,
	family *domain.Family,
	date time.Time,
	week int,
	weekday int,
) []domain.DaySchedule {
	variableCustody, ok := family.Variable.CustodyFor(week, weekday)
	if !ok {
		return nil
	}

	var candidates []domain.DaySchedule

	for _, school := range family.Variable.Schools {
		slots := []domain.Slot{
			domain.NewDropoffSlot(family.Variable, school, variableCustody.AM, date),
			domain.NewPickupSlot(family.Variable, school, variableCustody.PM, date),
		}

		complete := true
		for _, child := range family.Fixed {
			custody, ok := child.CustodyFor(week, weekday)
			if !ok {
				complete = false
				break
			}
			slots = append(slots,
				domain.NewDropoffSlot(child, child.Schools[0], custody.AM, date),
				domain.NewPickupSlot(child, child.Schools[0], custody.PM, date),
			)
		}
		if !complete {
			continue
		}

		slices.SortStableFunc(slots, func(a, b domain.Slot) int {
			return a.At.Compare(b.At)
		})

		if !slotsCoverable(slots) {
			continue
		}

		legs, total := journeyLegs(ctx, est, slots)

		candidates = append(candidates, domain.DaySchedule{
			Date:         date,
			School:       school,
			Slots:        slots,
			Legs:         legs,
			TotalMinutes: total,
		})
	}

	return candidates
}

// slotsCoverable reports whether every slot's responsible parent is
// available at that slot's clock time.
func slotsCoverable(slots []domain.Slot) bool {
	for _, slot := range slots {
		if !slot.Parent.AvailableAt(slot.At.Weekday(), domain.ClockOf(slot.At)) {
			return false
		}
	}
	return true
}

// journeyLegs looks up the travel time between each consecutive slot
// pair, targeting arrival at the later slot's time, and sums the total.
func journeyLegs(ctx context.Context, est *Estimator, slots []domain.Slot) ([]domain.Leg, int) {
	total := 0
	legs := make([]domain.Leg, 0, len(slots)-1)

	for i := 0; i < len(slots)-1; i++ {
		from, to := slots[i], slots[i+1]
		minutes := est.Minutes(ctx, from.Location(), to.Location(), to.At)
		total += minutes
		legs = append(legs, domain.Leg{
			From:    from.Label(),
			To:      to.Label(),
			Minutes: minutes,
		})
	}

	return legs, total
}

// BestDaySchedule selects the candidate with the minimum journey total.
// Ties are broken by candidate order: the first-listed school wins.
func BestDaySchedule(candidates []domain.DaySchedule) (domain.DaySchedule, bool) {
	if len(candidates) == 0 {
		return domain.DaySchedule{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.TotalMinutes < best.TotalMinutes {
			best = c
		}
	}

	return best, true
}

// PlanDay builds and selects the day schedule for one calendar weekday.
func PlanDay(
	ctx context.Context,
	est *Estimator,
	family *domain.Family,
	date time.Time,
	week int,
	weekday int,
) (domain.DaySchedule, bool) {
	return BestDaySchedule(CandidateDaySchedules(ctx, est, family, date, week, weekday))
}
