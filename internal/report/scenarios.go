package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"school-run-planner/internal/domain"
)

// AddressRank identifies one parent/address pairing in the ordering
// configuration.
type AddressRank struct {
	Parent  string `yaml:"parent"`
	Address string `yaml:"address"`
}

// Ordering is the explicit sort configuration for the scenario report:
// primary-school preference first, then parent/address preference.
// Combinations missing from either list sort last.
type Ordering struct {
	Schools         []string      `yaml:"schools"`
	ParentAddresses []AddressRank `yaml:"parent_addresses"`
}

// Sort orders scenario results by the given ordering, stably so equal
// keys keep their enumeration order.
func Sort(results []domain.ScenarioResult, ord Ordering) {
	schoolRank := make(map[string]int, len(ord.Schools))
	for i, label := range ord.Schools {
		schoolRank[label] = i
	}

	addressRank := make(map[AddressRank]int, len(ord.ParentAddresses))
	for i, ar := range ord.ParentAddresses {
		addressRank[ar] = i
	}

	rank := func(m map[string]int, key string, unmatched int) int {
		if r, ok := m[key]; ok {
			return r
		}
		return unmatched
	}

	slices.SortStableFunc(results, func(a, b domain.ScenarioResult) int {
		sa := rank(schoolRank, a.PrimarySchool, len(ord.Schools))
		sb := rank(schoolRank, b.PrimarySchool, len(ord.Schools))
		if sa != sb {
			return sa - sb
		}

		aa, ok := addressRank[AddressRank{Parent: a.Parent, Address: a.AddressLabel}]
		if !ok {
			aa = len(ord.ParentAddresses)
		}
		ab, ok := addressRank[AddressRank{Parent: b.Parent, Address: b.AddressLabel}]
		if !ok {
			ab = len(ord.ParentAddresses)
		}
		return aa - ab
	})
}

// PrintScenarioTable renders the fixed-width scenario table.
func PrintScenarioTable(w io.Writer, results []domain.ScenarioResult) {
	line := strings.Repeat("-", 105)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Possible Journey Scenarios:")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "%-50s%-20s%-15s%-20s\n", "Scenario Name", "Total Time (mins)", "Time of Day", "Children")
	fmt.Fprintln(w, line)
	for _, r := range results {
		fmt.Fprintf(w, "%-50s%-20d%-15s%-20s\n", r.Label, r.TotalMinutes, r.TimeOfDay, r.Children)
	}
	fmt.Fprintln(w, line)
}

var csvHeader = []string{
	"scenario_name",
	"parent",
	"parent_address",
	"children",
	"primary_school",
	"schools",
	"time_of_day",
	"total_minutes",
	"journey_details",
}

// WriteScenarioCSV exports all rows to a CSV file, overwriting any
// previous export. The per-leg breakdown is JSON-encoded in the final
// column.
func WriteScenarioCSV(path string, results []domain.ScenarioResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write scenario csv: create %q: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write scenario csv: header: %w", err)
	}

	for _, r := range results {
		legs, err := json.Marshal(r.Legs)
		if err != nil {
			return fmt.Errorf("write scenario csv: encode legs for %q: %w", r.Label, err)
		}

		record := []string{
			r.Label,
			r.Parent,
			r.AddressLabel,
			r.Children,
			r.PrimarySchool,
			r.Schools,
			r.TimeOfDay,
			strconv.Itoa(r.TotalMinutes),
			string(legs),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write scenario csv: row %q: %w", r.Label, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write scenario csv: flush: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("write scenario csv: close %q: %w", path, err)
	}

	return nil
}
