package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"school-run-planner/internal/domain"
)

func result(primarySchool, parent, address, label string) domain.ScenarioResult {
	return domain.ScenarioResult{
		Label:         label,
		Parent:        parent,
		AddressLabel:  address,
		PrimarySchool: primarySchool,
		TimeOfDay:     domain.TimeOfDayDropoff,
		Legs:          []domain.Leg{{From: "Home", To: primarySchool, Minutes: 10}},
		TotalMinutes:  10,
	}
}

func TestSortAppliesExplicitOrdering(t *testing.T) {
	results := []domain.ScenarioResult{
		result("St Luke's", "David", "Islingword Rd", "d"),
		result("Lindfield PA", "David", "Islingword Rd", "c"),
		result("Lindfield PA", "Hannah", "Chandlers Ford", "a"),
		result("Lindfield PA", "Hannah", "Petersfield", "b"),
	}

	ord := Ordering{
		Schools: []string{"Lindfield PA", "St Luke's"},
		ParentAddresses: []AddressRank{
			{Parent: "Hannah", Address: "Chandlers Ford"},
			{Parent: "Hannah", Address: "Petersfield"},
			{Parent: "David", Address: "Islingword Rd"},
		},
	}

	Sort(results, ord)

	got := make([]string, len(results))
	for i, r := range results {
		got[i] = r.Label
	}
	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortPlacesUnmatchedCombinationsLast(t *testing.T) {
	results := []domain.ScenarioResult{
		result("Unknown School", "David", "Islingword Rd", "unmatched"),
		result("Lindfield PA", "David", "Islingword Rd", "matched"),
	}

	Sort(results, Ordering{Schools: []string{"Lindfield PA"}})

	if results[0].Label != "matched" || results[1].Label != "unmatched" {
		t.Fatalf("order = [%s, %s], want matched first", results[0].Label, results[1].Label)
	}
}

func TestWriteScenarioCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journey_scenarios.csv")

	results := []domain.ScenarioResult{
		{
			Label:         "David Home (Islingword Rd) > A Drop-off",
			Parent:        "David",
			AddressLabel:  "Islingword Rd",
			Children:      "Fenella",
			PrimarySchool: "A",
			Schools:       "A",
			TimeOfDay:     domain.TimeOfDayDropoff,
			Legs: []domain.Leg{
				{From: "Home", To: "A", Minutes: 12},
				{From: "A", To: "Return Home", Minutes: 14},
			},
			TotalMinutes: 26,
		},
	}

	if err := WriteScenarioCSV(path, results); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("records = %d, want header + 1 row", len(records))
	}
	row := records[1]
	if row[0] != "David Home (Islingword Rd) > A Drop-off" {
		t.Errorf("scenario name = %q", row[0])
	}
	if row[7] != "26" {
		t.Errorf("total = %q, want 26", row[7])
	}
	if !strings.Contains(row[8], `"minutes":12`) {
		t.Errorf("journey details missing leg minutes: %q", row[8])
	}
}

func TestPrintTwoWeekScheduleShowsOvernightParents(t *testing.T) {
	david := &domain.Parent{Name: "David"}
	hannah := &domain.Parent{Name: "Hannah"}

	school := &domain.School{Name: "S", Label: "S", Address: "s"}

	custody := func(p *domain.Parent) domain.CustodyCalendar {
		cal := make(domain.CustodyCalendar, 2)
		for week := 1; week <= 2; week++ {
			days := make([]domain.DayCustody, 5)
			for i := range days {
				days[i] = domain.DayCustody{AM: p, PM: p, Overnight: p}
			}
			cal[week] = days
		}
		return cal
	}

	family := &domain.Family{
		Variable: &domain.Child{Name: "Fenella", Schools: []*domain.School{school}, Custody: custody(david)},
		Fixed:    []*domain.Child{{Name: "Teddy", Schools: []*domain.School{school}, Custody: custody(hannah)}},
	}

	days := make([]domain.DaySchedule, 10)
	for i := range days {
		days[i] = domain.DaySchedule{Date: time.Now(), School: school, TotalMinutes: 30}
	}
	schedule := &domain.TwoWeekSchedule{Days: days, TotalMinutes: 300}

	var buf strings.Builder
	PrintTwoWeekSchedule(&buf, family, schedule)
	out := buf.String()

	if !strings.Contains(out, "Total Journey Time: 300 minutes") {
		t.Errorf("output missing total:\n%s", out)
	}
	if !strings.Contains(out, "Week 1 Mon") || !strings.Contains(out, "Week 2 Fri") {
		t.Errorf("output missing day rows:\n%s", out)
	}
	if !strings.Contains(out, "David") || !strings.Contains(out, "Hannah") {
		t.Errorf("output missing overnight parents:\n%s", out)
	}
}

func TestScheduleICSHasOneEventPerSlot(t *testing.T) {
	parent := &domain.Parent{Name: "David", Addresses: []domain.Address{{Label: "Home", Full: "home"}}}
	school := &domain.School{Name: "S", Label: "S", Address: "s"}
	child := &domain.Child{Name: "Fenella", Schools: []*domain.School{school}}

	at := time.Date(2026, 9, 7, 8, 25, 0, 0, time.UTC)
	schedule := &domain.TwoWeekSchedule{
		Days: []domain.DaySchedule{{
			Date:   at,
			School: school,
			Slots: []domain.Slot{
				{Child: child, School: school, Parent: parent, Dropoff: true, At: at, Duration: 15 * time.Minute},
				{Child: child, School: school, Parent: parent, Dropoff: false, At: at.Add(7 * time.Hour), Duration: 15 * time.Minute},
			},
		}},
	}

	data := ScheduleICS(schedule)

	if got := strings.Count(data, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("events = %d, want 2", got)
	}
	if !strings.Contains(data, "Drop-off Fenella at S (David)") {
		t.Errorf("missing drop-off summary:\n%s", data)
	}
	if !strings.Contains(data, "Pick-up Fenella at S (David)") {
		t.Errorf("missing pick-up summary:\n%s", data)
	}
}
