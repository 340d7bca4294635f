package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"school-run-planner/internal/adapters/cache"
	"school-run-planner/internal/adapters/maps"
	"school-run-planner/internal/config"
	"school-run-planner/internal/platform/db"
	"school-run-planner/internal/platform/obs"
	"school-run-planner/internal/ports"
	"school-run-planner/internal/report"
	"school-run-planner/internal/services"
)

// main is the two-week scheduler's composition root: for the fixed
// custody rotation it selects the journey-minimal school option per
// day, prints the custody overview, and optionally exports the slots
// as an iCalendar file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	cfgPath := config.Get("CONFIG_PATH", "data/schedule.yml")
	icsPath := config.Get("EXPORT_ICS_PATH", "")

	journeyCache, closeCache, err := openJourneyCache()
	if err != nil {
		log.Fatal(err)
	}
	if closeCache != nil {
		defer closeCache()
	}

	provider, err := maps.NewGoogleProvider(apiKey, journeyCache)
	if err != nil {
		log.Fatal(err)
	}

	family, start, err := config.LoadSchedule(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := obs.NewRunContext(context.Background())
	est := services.NewEstimator(provider)

	schedule, err := services.PlanTwoWeeks(ctx, est, family, start)
	if errors.Is(err, services.ErrNoFeasibleSchedule) {
		fmt.Println("No feasible two-week schedules found.")
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	report.PrintTwoWeekSchedule(os.Stdout, family, schedule)

	if icsPath != "" {
		if err := report.WriteScheduleICS(icsPath, schedule); err != nil {
			log.Fatal(err)
		}
		log.Printf("exported days=%d path=%s", len(schedule.Days), icsPath)
	}
}

// openJourneyCache picks the persistent cache flavor from the
// environment: Postgres when DATABASE_URL is set, SQLite when
// CACHE_DB_PATH is set, otherwise no persistent cache at all.
func openJourneyCache() (ports.JourneyCache, func() error, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSchema(pg); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return cache.NewSQLJourneyCache(pg), pg.Close, nil
	}

	if dbPath := os.Getenv("CACHE_DB_PATH"); strings.TrimSpace(dbPath) != "" {
		lite, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSchema(lite); err != nil {
			lite.Close()
			return nil, nil, err
		}
		return cache.NewSqliteJourneyCache(lite), lite.Close, nil
	}

	return nil, nil, nil
}
