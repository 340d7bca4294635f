package domain

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ClockTime is a time of day expressed as minutes since midnight.
// School session times and availability windows are plain clock times
// with no date or zone attached until combined with a calendar day.
type ClockTime int

// ParseClockTime parses an "HH:MM" string.
func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock time %q: out of range", s)
	}
	return ClockTime(h*60 + m), nil
}

func (t ClockTime) Hour() int   { return int(t) / 60 }
func (t ClockTime) Minute() int { return int(t) % 60 }

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// At combines the clock time with the calendar day of the given date,
// in that date's location.
func (t ClockTime) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Add returns the clock time shifted by the given number of minutes.
func (t ClockTime) Add(minutes int) ClockTime { return t + ClockTime(minutes) }

// ClockOf extracts the clock time from a full timestamp.
func ClockOf(t time.Time) ClockTime { return ClockTime(t.Hour()*60 + t.Minute()) }

func (t *ClockTime) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("clock time must be an \"HH:MM\" string: %w", err)
	}

	parsed, err := ParseClockTime(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Window is a daily availability window. The zero Window is empty.
type Window struct {
	Start ClockTime `yaml:"start"`
	End   ClockTime `yaml:"end"`
}

// Contains reports whether t falls inside the window (inclusive bounds).
func (w Window) Contains(t ClockTime) bool {
	return t >= w.Start && t <= w.End
}
