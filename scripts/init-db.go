package main

import (
	"flag"
	"fmt"
	"log"

	"transport_manager/internal/config"
	"transport_manager/internal/database"
	"transport_manager/internal/migrations"
)

func main() {
	reset := flag.Bool("reset", false, "drop every table before migrating")
	flag.Parse()

	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, database.Options{LogLevel: cfg.DBLogLevel})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if *reset {
		fmt.Println("Dropping existing tables...")
		if err := migrations.DropAll(db); err != nil {
			log.Fatal("Failed to drop tables:", err)
		}
	}

	if err := migrations.RunMigrations(db, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Database initialization completed successfully!")
}
