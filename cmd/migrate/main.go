// Standalone migration runner. Applies pending SQL migrations and exits,
// for use in deploy pipelines where the API process must not migrate.
package main

import (
	"database/sql"
	"flag"
	"log"

	"fintrack/internal/config"
	"fintrack/internal/database"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	statusOnly := flag.Bool("status", false, "print the current migration version and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("failed to open database connection: %v", err)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db)

	if err := runner.WaitForDatabase(); err != nil {
		log.Fatalf("database unavailable: %v", err)
	}

	if *statusOnly {
		version, dirty, err := runner.GetMigrationStatus()
		if err != nil {
			log.Fatalf("failed to read migration status: %v", err)
		}
		log.Printf("Migration version: %d (dirty: %t)", version, dirty)
		return
	}

	if err := runner.RunMigrations(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
