package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	migrationsTable = "schema_migrations"
	// baselineVersion is the migration that created the catalog tables
	baselineVersion = 1
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// catalogTables are created by the baseline migration
var catalogTables = []string{"shows", "episodes"}

// runMigrations applies the embedded migrations. A database whose catalog tables predate the migration table is
// forced to the baseline version first so its tables are kept.
func runMigrations(db *sql.DB) error {
	legacy, err := isLegacyDatabase(db)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	if legacy {
		if err := m.Force(baselineVersion); err != nil {
			return fmt.Errorf("failed to baseline existing tables at version %d: %w", baselineVersion, err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// newMigrator wraps db without taking ownership of it. Closing the returned instance would close db.
func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{
		MigrationsTable: migrationsTable,
		NoTxWrap:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, nil
}

// isLegacyDatabase reports whether every catalog table exists but the migration table does not
func isLegacyDatabase(db *sql.DB) (bool, error) {
	tracked, err := countTables(db, migrationsTable)
	if err != nil || tracked > 0 {
		return false, err
	}

	found, err := countTables(db, catalogTables...)
	if err != nil {
		return false, err
	}

	return found == len(catalogTables), nil
}

func countTables(db *sql.DB, names ...string) (int, error) {
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN (%s)`,
		strings.TrimSuffix(strings.Repeat("?,", len(names)), ","))

	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// GetMigrationVersion returns the applied schema version. An untracked database reports version 0.
func (s *SQLite) GetMigrationVersion() (uint, bool, error) {
	var (
		version sql.NullInt64
		dirty   bool
	)

	err := s.db.QueryRow(`SELECT version, dirty FROM ` + migrationsTable + ` LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}

	return uint(version.Int64), dirty, nil
}
