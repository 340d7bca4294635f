package services

import (
	"context"
	"log"
	"sync"
	"time"

	"school-run-planner/internal/ports"
)

// FallbackMinutes is substituted whenever a journey-time lookup cannot
// be completed. Downstream aggregation stays total-defined at the cost
// of silently degraded accuracy.
const FallbackMinutes = 60

// Estimator memoizes journey-time lookups for the lifetime of the
// process and absorbs provider failures into a fixed fallback, so
// callers always get a usable number of minutes.
//
// Only successful lookups are memoized: a leg that fell back is retried
// on the next identical lookup.
type Estimator struct {
	provider ports.JourneyTimeProvider

	mu   sync.Mutex
	memo map[string]int
}

func NewEstimator(provider ports.JourneyTimeProvider) *Estimator {
	return &Estimator{
		provider: provider,
		memo:     make(map[string]int),
	}
}

// Minutes returns the estimated driving minutes between two addresses.
// A zero arrival means "depart now". Repeated calls with an identical
// (origin, destination, arrival) tuple return the memoized value
// without invoking the provider again.
func (e *Estimator) Minutes(ctx context.Context, origin, destination string, arrival time.Time) int {
	key := origin + "|" + destination + "|" + ports.ArrivalKey(arrival)

	e.mu.Lock()
	if minutes, ok := e.memo[key]; ok {
		e.mu.Unlock()
		return minutes
	}
	e.mu.Unlock()

	minutes, err := e.provider.JourneyTime(ctx, origin, destination, arrival)
	if err != nil {
		log.Printf(
			"journey time lookup failed origin=%q destination=%q err=%v (using %d minute fallback)",
			origin, destination, err, FallbackMinutes,
		)
		return FallbackMinutes
	}

	e.mu.Lock()
	e.memo[key] = minutes
	e.mu.Unlock()

	return minutes
}
