package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"school-run-planner/internal/domain"
)

// EnumerateScenarios builds every parent/address/school combination for
// the roster's primary child. Each combination yields two variants: the
// primary child alone, and the primary child together with the parent's
// companion child (whose school is not varied).
func EnumerateScenarios(roster *domain.Roster) []domain.Scenario {
	var scenarios []domain.Scenario

	for _, parent := range roster.Parents {
		companion := roster.Companion[parent.Name]

		for _, address := range parent.Addresses {
			for _, school := range roster.Primary.Schools {
				if companion != nil {
					scenarios = append(scenarios, domain.Scenario{
						Parent:   parent,
						Address:  address,
						Children: []*domain.Child{roster.Primary, companion},
						Schools:  []*domain.School{school, companion.Schools[0]},
					})
				}
				scenarios = append(scenarios, domain.Scenario{
					Parent:   parent,
					Address:  address,
					Children: []*domain.Child{roster.Primary},
					Schools:  []*domain.School{school},
				})
			}
		}
	}

	return scenarios
}

// ScenarioJourney evaluates one scenario for one time-of-day framing:
// home -> school1 -> school2 -> ... -> home, with every leg looked up
// as a depart-now estimate. The stop sequence is identical for both
// framings.
func ScenarioJourney(ctx context.Context, est *Estimator, sc domain.Scenario, timeOfDay string) domain.ScenarioResult {
	type stop struct {
		label   string
		address string
	}

	stops := make([]stop, 0, 2+len(sc.Schools))
	stops = append(stops, stop{"Home", sc.Address.Full})
	for _, school := range sc.Schools {
		stops = append(stops, stop{school.Label, school.Address})
	}
	stops = append(stops, stop{"Return Home", sc.Address.Full})

	total := 0
	legs := make([]domain.Leg, 0, len(stops)-1)
	for i := 0; i < len(stops)-1; i++ {
		minutes := est.Minutes(ctx, stops[i].address, stops[i+1].address, time.Time{})
		total += minutes
		legs = append(legs, domain.Leg{
			From:    stops[i].label,
			To:      stops[i+1].label,
			Minutes: minutes,
		})
	}

	childNames := make([]string, len(sc.Children))
	for i, child := range sc.Children {
		childNames[i] = child.Name
	}

	schoolLabels := make([]string, len(sc.Schools))
	for i, school := range sc.Schools {
		schoolLabels[i] = school.Label
	}
	joinedSchools := strings.Join(schoolLabels, " + ")

	return domain.ScenarioResult{
		Label:         fmt.Sprintf("%s Home (%s) > %s %s", sc.Parent.Name, sc.Address.Label, joinedSchools, timeOfDay),
		Parent:        sc.Parent.Name,
		AddressLabel:  sc.Address.Label,
		Children:      strings.Join(childNames, ", "),
		PrimarySchool: sc.Schools[0].Label,
		Schools:       strings.Join(schoolLabels, ", "),
		TimeOfDay:     timeOfDay,
		Legs:          legs,
		TotalMinutes:  total,
	}
}

// ScenarioJourneys evaluates every enumerated scenario for both the
// drop-off and pick-up framings.
func ScenarioJourneys(ctx context.Context, est *Estimator, roster *domain.Roster) []domain.ScenarioResult {
	scenarios := EnumerateScenarios(roster)

	results := make([]domain.ScenarioResult, 0, 2*len(scenarios))
	for _, sc := range scenarios {
		for _, timeOfDay := range []string{domain.TimeOfDayDropoff, domain.TimeOfDayPickup} {
			results = append(results, ScenarioJourney(ctx, est, sc, timeOfDay))
		}
	}

	return results
}
