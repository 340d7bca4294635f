package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"school-run-planner/internal/platform/obs"
	"school-run-planner/internal/ports"
)

// SQLJourneyCache is a Postgres-backed cache for journey-time lookups,
// for installations that point several machines at one shared cache.
type SQLJourneyCache struct {
	DB *sql.DB
}

func NewSQLJourneyCache(db *sql.DB) *SQLJourneyCache {
	return &SQLJourneyCache{DB: db}
}

// Fetch the cached minutes for one lookup tuple.
func (c *SQLJourneyCache) Get(
	ctx context.Context,
	origin string,
	destination string,
	arrival time.Time,
) (_ int, _ bool, err error) {
	defer obs.Time(ctx, "journey.cache.Get")(&err)

	if c.DB == nil {
		return 0, false, errors.New("journey cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return 0, false, errors.New("get journey cache: origin and destination must not be empty")
	}

	q := `
	SELECT minutes
	FROM journey_cache
	WHERE origin = $1
		AND destination = $2
		AND arrival = $3;
	`

	var minutes int
	err = c.DB.QueryRowContext(ctx, q, origin, destination, ports.ArrivalKey(arrival)).Scan(&minutes)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get journey cache: query journey_cache table: %w", err)
	}

	return minutes, true, nil
}

// Store the minutes for one lookup tuple, replacing any previous value.
func (c *SQLJourneyCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	arrival time.Time,
	minutes int,
) error {
	if c.DB == nil {
		return errors.New("journey cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("insert journey cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO journey_cache (origin, destination, arrival, minutes)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination, arrival) DO UPDATE
	SET minutes = EXCLUDED.minutes;
	`

	if _, err := c.DB.ExecContext(ctx, q, origin, destination, ports.ArrivalKey(arrival), minutes); err != nil {
		return fmt.Errorf("insert journey cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
