package domain

// Journey framings evaluated for every scenario. The chain of stops is
// the same for both; only the labelling differs.
const (
	TimeOfDayDropoff = "Drop-off"
	TimeOfDayPickup  = "Pick-up"
)

// Scenario is one parent/address/school combination to evaluate:
// the chauffeur drives home -> each child's school -> home.
type Scenario struct {
	Parent   *Parent
	Address  Address
	Children []*Child
	Schools  []*School
}

// ScenarioResult is one evaluated scenario/time-of-day pair, ready for
// reporting. Totals are exact sums of the leg minutes.
type ScenarioResult struct {
	Label         string
	Parent        string
	AddressLabel  string
	Children      string
	PrimarySchool string
	Schools       string
	TimeOfDay     string
	Legs          []Leg
	TotalMinutes  int
}
