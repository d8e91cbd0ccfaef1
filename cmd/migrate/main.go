package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"

	"github.com/PabloGitu/bookmanagerrmh2/internal/config"
	"github.com/PabloGitu/bookmanagerrmh2/internal/store"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	// Creating a migration only touches the source tree; it needs no
	// database.
	if *command == "create" {
		if *name == "" {
			log.Fatal("Name is required for 'create' command")
		}
		dir := migrationsDir(cfg.Database.Driver)
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		fmt.Printf("Migration created in %s: %s\n", dir, *name)
		return
	}

	st, err := store.Open(context.Background(), cfg.Database)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer st.Close()

	switch *command {
	case "up":
		if err := st.MigrateUp(); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := st.MigrateDown(); err != nil {
			log.Fatalf("Failed to rollback migrations: %v", err)
		}
		fmt.Println("Migrations rolled back successfully")
	case "status":
		if err := st.MigrationStatus(); err != nil {
			log.Fatalf("Failed to check migration status: %v", err)
		}
	default:
		log.Fatalf("Unknown command: %s. Use: up, down, status, create", *command)
	}
}
