package domain

import "time"

// Labelled street address. Full is free text passed directly to
// the travel-time lookup; Label is used in reports.
type Address struct {
	Label string
	Full  string
}

// A parent responsible for drop-offs and pick-ups. Reference data,
// fixed for the lifetime of a run.
type Parent struct {
	Name         string
	Addresses    []Address
	Availability map[time.Weekday]Window
}

// HomeAddress returns the parent's primary address.
func (p *Parent) HomeAddress() string {
	if len(p.Addresses) == 0 {
		return ""
	}
	return p.Addresses[0].Full
}

// AvailableAt reports whether the parent can cover a slot at the given
// clock time. A day with no configured window is unrestricted.
func (p *Parent) AvailableAt(day time.Weekday, t ClockTime) bool {
	w, ok := p.Availability[day]
	if !ok {
		return true
	}
	return w.Contains(t)
}

// Immutable school reference data.
type School struct {
	Name               string
	Label              string
	Address            string
	NormalStart        ClockTime
	NormalEnd          ClockTime
	BreakfastClubStart ClockTime
	AftercareEnd       ClockTime
	Source             string
}

// DayCustody maps the half-days of one weekday to responsible parents.
type DayCustody struct {
	AM        *Parent
	PM        *Parent
	Overnight *Parent
}

// CustodyCalendar covers the fixed two-week rotation: week (1 or 2)
// to the five weekdays Monday..Friday.
type CustodyCalendar map[int][]DayCustody

// A child with its ordered candidate schools. Custody is populated only
// for the two-week scheduler; the scenario enumerator leaves it nil.
type Child struct {
	Name    string
	Schools []*School
	Custody CustodyCalendar
}

// CustodyFor returns the custody entry for (week, weekday index 0..4).
func (c *Child) CustodyFor(week, weekday int) (DayCustody, bool) {
	days, ok := c.Custody[week]
	if !ok || weekday < 0 || weekday >= len(days) {
		return DayCustody{}, false
	}
	return days[weekday], true
}

// Roster is the scenario enumerator's view of the family: a primary
// child whose school choice varies, and an optional companion child per
// parent whose school is fixed.
type Roster struct {
	Parents   []*Parent
	Primary   *Child
	Companion map[string]*Child
}

// Family is the two-week scheduler's view: one variable child and the
// fixed children who ride along every day.
type Family struct {
	Variable *Child
	Fixed    []*Child
}

// Children returns the variable child followed by the fixed children.
func (f *Family) Children() []*Child {
	out := make([]*Child, 0, 1+len(f.Fixed))
	out = append(out, f.Variable)
	out = append(out, f.Fixed...)
	return out
}
