package services

import (
	"testing"
	"time"

	"school-run-planner/internal/domain"
)

func mustClock(t *testing.T, s string) domain.ClockTime {
	t.Helper()

	ct, err := domain.ParseClockTime(s)
	if err != nil {
		t.Fatalf("parse clock time %q: %v", s, err)
	}
	return ct
}

func testParent(name, address string) *domain.Parent {
	return &domain.Parent{
		Name:      name,
		Addresses: []domain.Address{{Label: name, Full: address}},
	}
}

func testSchool(t *testing.T, label, address, start, end string) *domain.School {
	t.Helper()

	return &domain.School{
		Name:        label,
		Label:       label,
		Address:     address,
		NormalStart: mustClock(t, start),
		NormalEnd:   mustClock(t, end),
	}
}

// fullCustody assigns one parent to every half-day of both weeks.
func fullCustody(parent *domain.Parent) domain.CustodyCalendar {
	cal := make(domain.CustodyCalendar, 2)
	for week := 1; week <= 2; week++ {
		days := make([]domain.DayCustody, 5)
		for i := range days {
			days[i] = domain.DayCustody{AM: parent, PM: parent, Overnight: parent}
		}
		cal[week] = days
	}
	return cal
}

// monday returns a fixed Monday so weekday arithmetic is predictable.
func monday() time.Time {
	return time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
}
