package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"school-run-planner/internal/ports"
)

// SQLite backed cache for (origin, destination, arrival) journey times.
// Keys are expected to be consistent (e.g., already normalized) by the
// caller.
type SqliteJourneyCache struct {
	DB *sql.DB
}

func NewSqliteJourneyCache(db *sql.DB) *SqliteJourneyCache {
	return &SqliteJourneyCache{DB: db}
}

// Fetch the cached minutes for one lookup tuple.
func (c *SqliteJourneyCache) Get(
	ctx context.Context,
	origin string,
	destination string,
	arrival time.Time,
) (int, bool, error) {
	if c.DB == nil {
		return 0, false, errors.New("journey cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return 0, false, errors.New("get journey cache: origin and destination must not be empty")
	}

	q := `
	SELECT minutes
	FROM journey_cache
	WHERE origin = ?
		AND destination = ?
		AND arrival = ?;
	`

	var minutes int
	err := c.DB.QueryRowContext(ctx, q, origin, destination, ports.ArrivalKey(arrival)).Scan(&minutes)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get journey cache: query journey_cache table: %w", err)
	}

	return minutes, true, nil
}

// Store the minutes for one lookup tuple, replacing any previous value.
func (c *SqliteJourneyCache) Put(
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
	INSERT OR REPLACE INTO journey_cache (
		origin,
		destination,
		arrival,
		minutes
	)
	VALUES (?, ?, ?, ?);
	`

	if _, err := c.DB.ExecContext(ctx, q, origin, destination, ports.ArrivalKey(arrival), minutes); err != nil {
		return fmt.Errorf("insert journey cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
