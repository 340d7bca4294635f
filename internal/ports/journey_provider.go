package ports

import (
	"context"
	"time"
)

// Contract for retrieving an estimated driving time between two
// free-text addresses.
type JourneyTimeProvider interface {
	// Return the estimated driving time in whole minutes. A zero
	// arrival means "depart now"; otherwise the estimate targets
	// arriving at the given time.
	JourneyTime(ctx context.Context, origin, destination string, arrival time.Time) (int, error)
}

// ArrivalKey renders an arrival time as a stable cache-key component.
// A zero time ("depart now") keys as the empty string.
func ArrivalKey(arrival time.Time) string {
	if arrival.IsZero() {
		return ""
	}
	return arrival.UTC().Format(time.RFC3339)
}
