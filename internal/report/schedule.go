package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"school-run-planner/internal/domain"
)

var shortDayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// PrintTwoWeekSchedule renders the two-week total and the per-day
// overnight-custody view for every child. The chosen school per day is
// deliberately not part of the console view.
func PrintTwoWeekSchedule(w io.Writer, family *domain.Family, schedule *domain.TwoWeekSchedule) {
	line := strings.Repeat("=", 70)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Optimal Two-Week Schedule")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Total Journey Time: %d minutes\n", schedule.TotalMinutes)
	fmt.Fprintln(w, line)

	children := family.Children()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Schedule Overview")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "%-15s", "Date")
	for _, child := range children {
		fmt.Fprintf(w, "%-10s", child.Name)
	}
	fmt.Fprintln(w)

	for i := range schedule.Days {
		week := i/5 + 1
		weekday := i % 5

		fmt.Fprintf(w, "%-15s", fmt.Sprintf("Week %d %s", week, shortDayNames[weekday]))
		for _, child := range children {
			name := ""
			if custody, ok := child.CustodyFor(week, weekday); ok && custody.Overnight != nil {
				name = custody.Overnight.Name
			}
			fmt.Fprintf(w, "%-10s", name)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, strings.Repeat("-", 70))
}

// WriteScheduleICS exports every drop-off and pick-up slot of the
// two-week schedule as a calendar file, one event per slot.
func WriteScheduleICS(path string, schedule *domain.TwoWeekSchedule) error {
	data := ScheduleICS(schedule)

	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write schedule ics: %w", err)
	}

	return nil
}

// ScheduleICS serializes the schedule's slots as an iCalendar document.
func ScheduleICS(schedule *domain.TwoWeekSchedule) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//school-run-planner//scheduler//EN")

	now := time.Now()

	for _, day := range schedule.Days {
		for _, slot := range day.Slots {
			action := "Pick-up"
			if slot.Dropoff {
				action = "Drop-off"
			}

			event := cal.AddEvent(uuid.NewString())
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetStartAt(slot.At)
			event.SetEndAt(slot.At.Add(slot.Duration))
			event.SetSummary(fmt.Sprintf("%s %s at %s (%s)", action, slot.Child.Name, slot.School.Label, slot.Parent.Name))
			event.SetLocation(slot.School.Address)
		}
	}

	return cal.Serialize()
}
