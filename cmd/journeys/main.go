package main

import (
	"context"
	"database/sql"
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

// main is the scenario enumerator's composition root: it wires the
// Google provider behind an optional persistent cache, evaluates every
// parent/address/school permutation, and renders the table plus CSV
// export.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	cfgPath := config.Get("CONFIG_PATH", "data/journeys.yml")
	csvPath := config.Get("EXPORT_CSV_PATH", "journey_scenarios.csv")

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

	roster, ordering, err := config.LoadJourneys(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := obs.NewRunContext(context.Background())
	est := services.NewEstimator(provider)

	results := services.ScenarioJourneys(ctx, est, roster)
	report.Sort(results, ordering)

	report.PrintScenarioTable(os.Stdout, results)

	if err := report.WriteScenarioCSV(csvPath, results); err != nil {
		log.Fatal(err)
	}
	log.Printf("exported rows=%d path=%s", len(results), csvPath)
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
