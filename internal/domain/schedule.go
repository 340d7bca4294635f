package domain

import "time"

// Drop-offs start 15 minutes before the school day; pick-ups start
// 5 minutes before it ends. Both occupy a 15 minute window.
const (
	DropoffLeadMinutes = 15
	PickupLeadMinutes  = 5
	SlotDuration       = 15 * time.Minute
)

// Slot is one drop-off or pick-up on a given day: which child, at which
// school, covered by which parent, and when.
type Slot struct {
	Child    *Child
	School   *School
	Parent   *Parent
	Dropoff  bool
	At       time.Time
	Duration time.Duration
}

// NewDropoffSlot derives the drop-off slot for a child at a school on
// the given date.
func NewDropoffSlot(child *Child, school *School, parent *Parent, date time.Time) Slot {
	return Slot{
		Child:    child,
		School:   school,
		Parent:   parent,
		Dropoff:  true,
		At:       school.NormalStart.Add(-DropoffLeadMinutes).At(date),
		Duration: SlotDuration,
	}
}

// NewPickupSlot derives the pick-up slot for a child at a school on the
// given date.
func NewPickupSlot(child *Child, school *School, parent *Parent, date time.Time) Slot {
	return Slot{
		Child:    child,
		School:   school,
		Parent:   parent,
		Dropoff:  false,
		At:       school.NormalEnd.Add(-PickupLeadMinutes).At(date),
		Duration: SlotDuration,
	}
}

// Location returns the address the chauffeur is at during the slot:
// the school for drop-offs, the responsible parent's home for pick-ups.
func (s Slot) Location() string {
	if s.Dropoff {
		return s.School.Address
	}
	return s.Parent.HomeAddress()
}

// Label is a short human-readable name for the slot's location.
func (s Slot) Label() string {
	if s.Dropoff {
		return s.School.Label
	}
	return s.Parent.Name
}

// Leg is one origin->destination travel-time lookup within a journey
// chain.
type Leg struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Minutes int    `json:"minutes"`
}

// DaySchedule is the planned chauffeur day for one calendar weekday:
// the variable child's chosen school, slots ordered by clock time, and
// the summed journey minutes between consecutive slots.
type DaySchedule struct {
	Date         time.Time
	School       *School
	Slots        []Slot
	Legs         []Leg
	TotalMinutes int
}

// TwoWeekSchedule aggregates the ten weekday schedules of the fixed
// custody rotation.
type TwoWeekSchedule struct {
	Days         []DaySchedule
	TotalMinutes int
}
