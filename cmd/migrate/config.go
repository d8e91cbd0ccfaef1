package main

import (
	"os"

	"github.com/PabloGitu/bookmanagerrmh2/internal/store"
)

// migrationsDir is where 'create' writes new migration files. The same
// files ship embedded in internal/store for up/down/status.
func migrationsDir(driver string) string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	if driver == string(store.DialectSQLite) {
		return "internal/store/migrations/sqlite"
	}
	return "internal/store/migrations/postgres"
}
