package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the journey cache schema. The statement is portable across
// the SQLite and Postgres flavors used by the two cache adapters.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS journey_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		arrival TEXT NOT NULL DEFAULT '',
		minutes INTEGER NOT NULL,
		PRIMARY KEY (origin, destination, arrival)
	);
	`

	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create journey_cache table: %w", err)
	}

	return nil
}
