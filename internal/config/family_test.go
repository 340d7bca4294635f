package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const journeysYAML = `
primary_child: Fenella
schools:
  - name: Lindfield Primary Academy
    label: Lindfield PA
    address: School Lane, Lindfield
    normal_start: "08:45"
    normal_end: "15:15"
    breakfast_club_start: "07:00"
    aftercare_end: "18:30"
  - name: St Luke's
    address: Queens Park Rise, Brighton
    normal_start: "08:40"
    normal_end: "15:15"
    breakfast_club_start: "08:00"
    aftercare_end: "17:30"
children:
  - name: Fenella
    schools: [Lindfield Primary Academy, St Luke's]
  - name: Ruby
    schools: [Lindfield Primary Academy]
parents:
  - name: David
    companion: Ruby
    addresses:
      - {label: Islingword Rd, address: "39 Islingword Road, Brighton"}
  - name: Hannah
    availability: {start: "06:30", end: "20:00"}
    addresses:
      - {label: Chandlers Ford, address: "12 The Maples, Eastleigh"}
      - {label: Petersfield, address: "Petersfield, UK"}
report:
  schools: [Lindfield PA, St Luke's]
  parent_addresses:
    - {parent: Hannah, address: Chandlers Ford}
`

func TestLoadJourneys(t *testing.T) {
	path := writeFile(t, "journeys.yml", journeysYAML)

	roster, ordering, err := LoadJourneys(path)
	if err != nil {
		t.Fatalf("load journeys: %v", err)
	}

	if roster.Primary.Name != "Fenella" || len(roster.Primary.Schools) != 2 {
		t.Fatalf("primary = %q with %d schools, want Fenella with 2", roster.Primary.Name, len(roster.Primary.Schools))
	}
	if roster.Primary.Schools[0].Label != "Lindfield PA" {
		t.Errorf("first school label = %q", roster.Primary.Schools[0].Label)
	}
	// A school without a label falls back to its name.
	if roster.Primary.Schools[1].Label != "St Luke's" {
		t.Errorf("second school label = %q", roster.Primary.Schools[1].Label)
	}

	if len(roster.Parents) != 2 {
		t.Fatalf("parents = %d, want 2", len(roster.Parents))
	}
	if c := roster.Companion["David"]; c == nil || c.Name != "Ruby" {
		t.Errorf("David companion = %v, want Ruby", c)
	}
	if _, ok := roster.Companion["Hannah"]; ok {
		t.Error("Hannah should have no companion")
	}

	hannah := roster.Parents[1]
	if len(hannah.Addresses) != 2 || hannah.Addresses[1].Label != "Petersfield" {
		t.Errorf("Hannah addresses = %+v", hannah.Addresses)
	}
	window, ok := hannah.Availability[time.Wednesday]
	if !ok || window.Start.String() != "06:30" || window.End.String() != "20:00" {
		t.Errorf("Hannah Wednesday window = %+v", window)
	}

	david := roster.Parents[0]
	if w := david.Availability[time.Monday]; w.Start.String() != "07:00" || w.End.String() != "19:00" {
		t.Errorf("default window = %+v, want 07:00-19:00", w)
	}

	if len(ordering.Schools) != 2 || ordering.Schools[0] != "Lindfield PA" {
		t.Errorf("ordering schools = %v", ordering.Schools)
	}
	if len(ordering.ParentAddresses) != 1 || ordering.ParentAddresses[0].Parent != "Hannah" {
		t.Errorf("ordering addresses = %v", ordering.ParentAddresses)
	}
}

const scheduleYAML = `
variable_child: Fenella
start_date: "2026-09-07"
parents:
  - {name: David, address: "Brighton, UK"}
  - {name: Hannah, address: "Petworth, UK"}
schools:
  - name: St Luke's
    address: Queens Park Rise, Brighton
    normal_start: "08:40"
    normal_end: "15:15"
    breakfast_club_start: "08:00"
    aftercare_end: "17:30"
children:
  - name: Fenella
    schools: [St Luke's]
    custody:
      week1: [David, David, {am: Hannah, pm: David}, Hannah, Hannah]
      week2: [David, David, Hannah, Hannah, David]
  - name: Ruby
    schools: [St Luke's]
    custody:
      week1: [Hannah, Hannah, Hannah, Hannah, Hannah]
      week2: [David, David, David, David, David]
`

func TestLoadSchedule(t *testing.T) {
	path := writeFile(t, "schedule.yml", scheduleYAML)

	family, start, err := LoadSchedule(path)
	if err != nil {
		t.Fatalf("load schedule: %v", err)
	}

	if family.Variable == nil || family.Variable.Name != "Fenella" {
		t.Fatalf("variable child = %+v, want Fenella", family.Variable)
	}
	if len(family.Fixed) != 1 || family.Fixed[0].Name != "Ruby" {
		t.Fatalf("fixed children = %+v, want [Ruby]", family.Fixed)
	}

	want := time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local)
	if !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}

	// Scalar custody entries cover all three half-days.
	day, ok := family.Variable.CustodyFor(1, 0)
	if !ok || day.AM.Name != "David" || day.PM.Name != "David" || day.Overnight.Name != "David" {
		t.Errorf("week1 Monday custody = %+v", day)
	}

	// Mapping entries default overnight to the PM parent.
	day, ok = family.Variable.CustodyFor(1, 2)
	if !ok || day.AM.Name != "Hannah" || day.PM.Name != "David" || day.Overnight.Name != "David" {
		t.Errorf("week1 Wednesday custody = %+v", day)
	}
}

func TestLoadScheduleRejectsIncompleteCustody(t *testing.T) {
	broken := strings.Replace(scheduleYAML, "week2: [David, David, Hannah, Hannah, David]", "", 1)
	path := writeFile(t, "schedule.yml", broken)

	if _, _, err := LoadSchedule(path); err == nil || !strings.Contains(err.Error(), "week2") {
		t.Fatalf("err = %v, want missing week2 error", err)
	}
}

func TestLoadJourneysRejectsUnknownSchool(t *testing.T) {
	broken := strings.Replace(journeysYAML, "schools: [Lindfield Primary Academy, St Luke's]", "schools: [Hogwarts]", 1)
	path := writeFile(t, "journeys.yml", broken)

	if _, _, err := LoadJourneys(path); err == nil || !strings.Contains(err.Error(), "Hogwarts") {
		t.Fatalf("err = %v, want unknown school error", err)
	}
}

func TestLoadJourneysRejectsChildWithoutSchools(t *testing.T) {
	broken := strings.Replace(journeysYAML, "schools: [Lindfield Primary Academy]", "schools: []", 1)
	path := writeFile(t, "journeys.yml", broken)

	if _, _, err := LoadJourneys(path); err == nil {
		t.Fatal("expected error for child with no candidate schools")
	}
}
