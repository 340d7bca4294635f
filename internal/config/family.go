package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"school-run-planner/internal/domain"
	"school-run-planner/internal/report"
)

// Reference data (parents, schools, children, custody calendars) is
// loaded from YAML rather than embedded in code, so tests and other
// families can substitute their own.

type schoolConfig struct {
	Name               string           `yaml:"name"`
	Label              string           `yaml:"label"`
	Address            string           `yaml:"address"`
	NormalStart        domain.ClockTime `yaml:"normal_start"`
	NormalEnd          domain.ClockTime `yaml:"normal_end"`
	BreakfastClubStart domain.ClockTime `yaml:"breakfast_club_start"`
	AftercareEnd       domain.ClockTime `yaml:"aftercare_end"`
	Source             string           `yaml:"source"`
}

type addressConfig struct {
	Label   string `yaml:"label"`
	Address string `yaml:"address"`
}

type parentConfig struct {
	Name         string          `yaml:"name"`
	Companion    string          `yaml:"companion"`
	Address      string          `yaml:"address"`
	Addresses    []addressConfig `yaml:"addresses"`
	Availability *domain.Window  `yaml:"availability"`
}

// custodyDay accepts either a single parent name (covering AM, PM and
// overnight) or an explicit {am, pm, overnight} mapping. Overnight
// defaults to the PM parent.
type custodyDay struct {
	AM        string
	PM        string
	Overnight string
}

func (d *custodyDay) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return fmt.Errorf("custody day: %w", err)
		}
		d.AM, d.PM, d.Overnight = name, name, name
		return nil
	}

	var plain struct {
		AM        string `yaml:"am"`
		PM        string `yaml:"pm"`
		Overnight string `yaml:"overnight"`
	}
	if err := node.Decode(&plain); err != nil {
		return fmt.Errorf("custody day: %w", err)
	}
	if plain.AM == "" || plain.PM == "" {
		return fmt.Errorf("custody day: am and pm parents are required")
	}

	d.AM, d.PM, d.Overnight = plain.AM, plain.PM, plain.Overnight
	if d.Overnight == "" {
		d.Overnight = d.PM
	}
	return nil
}

type childConfig struct {
	Name    string                  `yaml:"name"`
	Schools []string                `yaml:"schools"`
	Custody map[string][]custodyDay `yaml:"custody"`
}

type journeysFile struct {
	PrimaryChild string          `yaml:"primary_child"`
	Parents      []parentConfig  `yaml:"parents"`
	Schools      []schoolConfig  `yaml:"schools"`
	Children     []childConfig   `yaml:"children"`
	Report       report.Ordering `yaml:"report"`
}

type scheduleFile struct {
	VariableChild string         `yaml:"variable_child"`
	StartDate     string         `yaml:"start_date"`
	Parents       []parentConfig `yaml:"parents"`
	Schools       []schoolConfig `yaml:"schools"`
	Children      []childConfig  `yaml:"children"`
}

// Parents default to a 07:00-19:00 weekday availability window.
var defaultWindow = domain.Window{Start: 7 * 60, End: 19 * 60}

func buildAvailability(w *domain.Window) map[time.Weekday]domain.Window {
	window := defaultWindow
	if w != nil {
		window = *w
	}

	out := make(map[time.Weekday]domain.Window, 5)
	for day := time.Monday; day <= time.Friday; day++ {
		out[day] = window
	}
	return out
}

func buildSchools(configs []schoolConfig) (map[string]*domain.School, error) {
	out := make(map[string]*domain.School, len(configs))
	for _, sc := range configs {
		if sc.Name == "" {
			return nil, fmt.Errorf("school with empty name")
		}
		if sc.Address == "" {
			return nil, fmt.Errorf("school %q: address is required", sc.Name)
		}
		if _, ok := out[sc.Name]; ok {
			return nil, fmt.Errorf("duplicate school %q", sc.Name)
		}

		label := sc.Label
		if label == "" {
			label = sc.Name
		}

		out[sc.Name] = &domain.School{
			Name:               sc.Name,
			Label:              label,
			Address:            sc.Address,
			NormalStart:        sc.NormalStart,
			NormalEnd:          sc.NormalEnd,
			BreakfastClubStart: sc.BreakfastClubStart,
			AftercareEnd:       sc.AftercareEnd,
			Source:             sc.Source,
		}
	}
	return out, nil
}

func buildChild(cc childConfig, schools map[string]*domain.School) (*domain.Child, error) {
	if cc.Name == "" {
		return nil, fmt.Errorf("child with empty name")
	}
	if len(cc.Schools) == 0 {
		return nil, fmt.Errorf("child %q: at least one candidate school is required", cc.Name)
	}

	child := &domain.Child{Name: cc.Name}
	for _, name := range cc.Schools {
		school, ok := schools[name]
		if !ok {
			return nil, fmt.Errorf("child %q: unknown school %q", cc.Name, name)
		}
		child.Schools = append(child.Schools, school)
	}
	return child, nil
}

func buildCustody(cc childConfig, parents map[string]*domain.Parent) (domain.CustodyCalendar, error) {
	if len(cc.Custody) == 0 {
		return nil, fmt.Errorf("child %q: custody calendar is required", cc.Name)
	}

	calendar := make(domain.CustodyCalendar, 2)
	for _, weekKey := range []string{"week1", "week2"} {
		days, ok := cc.Custody[weekKey]
		if !ok {
			return nil, fmt.Errorf("child %q: custody calendar is missing %s", cc.Name, weekKey)
		}
		if len(days) != 5 {
			return nil, fmt.Errorf("child %q: %s must have 5 weekday entries, got %d", cc.Name, weekKey, len(days))
		}

		week := make([]domain.DayCustody, 5)
		for i, day := range days {
			resolve := func(name string) (*domain.Parent, error) {
				parent, ok := parents[name]
				if !ok {
					return nil, fmt.Errorf("child %q: %s day %d: unknown parent %q", cc.Name, weekKey, i, name)
				}
				return parent, nil
			}

			am, err := resolve(day.AM)
			if err != nil {
				return nil, err
			}
			pm, err := resolve(day.PM)
			if err != nil {
				return nil, err
			}
			overnight, err := resolve(day.Overnight)
			if err != nil {
				return nil, err
			}

			week[i] = domain.DayCustody{AM: am, PM: pm, Overnight: overnight}
		}

		weekNum := 1
		if weekKey == "week2" {
			weekNum = 2
		}
		calendar[weekNum] = week
	}

	if len(cc.Custody) != 2 {
		return nil, fmt.Errorf("child %q: custody calendar must cover exactly weeks 1 and 2", cc.Name)
	}

	return calendar, nil
}

// LoadJourneys reads the scenario-enumerator configuration: parents
// with labelled addresses, the primary child whose school varies, and
// the per-parent companion child.
func LoadJourneys(path string) (*domain.Roster, report.Ordering, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, report.Ordering{}, fmt.Errorf("load journeys config: read %q: %w", path, err)
	}

	var file journeysFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, report.Ordering{}, fmt.Errorf("load journeys config: parse %q: %w", path, err)
	}

	schools, err := buildSchools(file.Schools)
	if err != nil {
		return nil, report.Ordering{}, fmt.Errorf("load journeys config: %w", err)
	}

	children := make(map[string]*domain.Child, len(file.Children))
	for _, cc := range file.Children {
		child, err := buildChild(cc, schools)
		if err != nil {
			return nil, report.Ordering{}, fmt.Errorf("load journeys config: %w", err)
		}
		children[child.Name] = child
	}

	primary, ok := children[file.PrimaryChild]
	if !ok {
		return nil, report.Ordering{}, fmt.Errorf("load journeys config: unknown primary child %q", file.PrimaryChild)
	}

	roster := &domain.Roster{
		Primary:   primary,
		Companion: make(map[string]*domain.Child),
	}

	for _, pc := range file.Parents {
		if pc.Name == "" {
			return nil, report.Ordering{}, fmt.Errorf("load journeys config: parent with empty name")
		}
		if len(pc.Addresses) == 0 {
			return nil, report.Ordering{}, fmt.Errorf("load journeys config: parent %q: at least one address is required", pc.Name)
		}

		parent := &domain.Parent{
			Name:         pc.Name,
			Availability: buildAvailability(pc.Availability),
		}
		for _, ac := range pc.Addresses {
			if ac.Address == "" {
				return nil, report.Ordering{}, fmt.Errorf("load journeys config: parent %q: address with empty value", pc.Name)
			}
			parent.Addresses = append(parent.Addresses, domain.Address{Label: ac.Label, Full: ac.Address})
		}

		if pc.Companion != "" {
			companion, ok := children[pc.Companion]
			if !ok {
				return nil, report.Ordering{}, fmt.Errorf("load journeys config: parent %q: unknown companion child %q", pc.Name, pc.Companion)
			}
			roster.Companion[pc.Name] = companion
		}

		roster.Parents = append(roster.Parents, parent)
	}

	if len(roster.Parents) == 0 {
		return nil, report.Ordering{}, fmt.Errorf("load journeys config: at least one parent is required")
	}

	return roster, file.Report, nil
}

// LoadSchedule reads the two-week scheduler configuration: single-
// address parents, the variable child, and per-child custody calendars.
// The returned start time is zero when no start_date is configured.
func LoadSchedule(path string) (*domain.Family, time.Time, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load schedule config: read %q: %w", path, err)
	}

	var file scheduleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, time.Time{}, fmt.Errorf("load schedule config: parse %q: %w", path, err)
	}

	schools, err := buildSchools(file.Schools)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load schedule config: %w", err)
	}

	parents := make(map[string]*domain.Parent, len(file.Parents))
	for _, pc := range file.Parents {
		if pc.Name == "" {
			return nil, time.Time{}, fmt.Errorf("load schedule config: parent with empty name")
		}
		if pc.Address == "" {
			return nil, time.Time{}, fmt.Errorf("load schedule config: parent %q: address is required", pc.Name)
		}
		parents[pc.Name] = &domain.Parent{
			Name:         pc.Name,
			Addresses:    []domain.Address{{Label: pc.Name, Full: pc.Address}},
			Availability: buildAvailability(pc.Availability),
		}
	}

	family := &domain.Family{}
	for _, cc := range file.Children {
		child, err := buildChild(cc, schools)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("load schedule config: %w", err)
		}

		child.Custody, err = buildCustody(cc, parents)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("load schedule config: %w", err)
		}

		if child.Name == file.VariableChild {
			family.Variable = child
		} else {
			family.Fixed = append(family.Fixed, child)
		}
	}

	if family.Variable == nil {
		return nil, time.Time{}, fmt.Errorf("load schedule config: unknown variable child %q", file.VariableChild)
	}

	var start time.Time
	if file.StartDate != "" {
		start, err = time.ParseInLocation("2006-01-02", file.StartDate, time.Local)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("load schedule config: parse start_date: %w", err)
		}
	}

	return family, start, nil
}
