package ports

import (
	"context"
	"time"
)

// Port: a persistent cache of journey-time lookups, keyed by the full
// (origin, destination, arrival-or-absent) tuple. Implementations must
// tolerate concurrent use.
type JourneyCache interface {
	// Return the cached minutes for the tuple, with ok=false on a miss.
	Get(ctx context.Context, origin, destination string, arrival time.Time) (minutes int, ok bool, err error)
	// Store the minutes for the tuple, replacing any previous value.
	Put(ctx context.Context, origin, destination string, arrival time.Time, minutes int) error
}
