package store

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

func (s *Store) gooseSetup() (dir string, err error) {
	goose.SetBaseFS(migrationsFS)
	switch s.Dialect {
	case DialectPostgres:
		return "migrations/postgres", goose.SetDialect("postgres")
	case DialectSQLite:
		return "migrations/sqlite", goose.SetDialect("sqlite3")
	default:
		return "", fmt.Errorf("no migrations for dialect %q", s.Dialect)
	}
}

// MigrateUp applies all pending migrations for the store's dialect.
func (s *Store) MigrateUp() error {
	dir, err := s.gooseSetup()
	if err != nil {
		return err
	}
	return goose.Up(s.DB, dir)
}

// MigrateDown rolls back the most recent migration.
func (s *Store) MigrateDown() error {
	dir, err := s.gooseSetup()
	if err != nil {
		return err
	}
	return goose.Down(s.DB, dir)
}

// MigrationStatus prints the per-migration applied state.
func (s *Store) MigrationStatus() error {
	dir, err := s.gooseSetup()
	if err != nil {
		return err
	}
	return goose.Status(s.DB, dir)
}
