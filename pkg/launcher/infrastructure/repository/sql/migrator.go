package sql

import (
	stdsql "database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// MigrationsTable records the applied history schema version.
const MigrationsTable = "dotlaunch_schema_migrations"

//go:embed migrations
var migrationFS embed.FS

// getDatabaseDriver wraps sqlDB in the golang-migrate driver for driverName.
func getDatabaseDriver(sqlDB *stdsql.DB, driverName string) (database.Driver, error) {
	switch driverName {
	case "postgres":
		return migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{MigrationsTable: MigrationsTable})
	case "mysql":
		return migratemysql.WithInstance(sqlDB, &migratemysql.Config{MigrationsTable: MigrationsTable})
	case "sqlite":
		return migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{MigrationsTable: MigrationsTable})
	default:
		return nil, fmt.Errorf("unsupported database type for migration: %s", driverName)
	}
}

// Migrate applies the embedded migrations for driverName.
// golang-migrate closes the database it was given, so sqlDB must not be shared.
func Migrate(sqlDB *stdsql.DB, driverName string) error {
	sourceDriver, err := iofs.New(migrationFS, "migrations/"+driverName)
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver for %s: %w", driverName, err)
	}

	dbDriver, err := getDatabaseDriver(sqlDB, driverName)
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, driverName, dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("history migration failed (driver %s): %w", driverName, err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		logger.Debugf("History schema at version %d (dirty=%v).", version, dirty)
	}
	return nil
}
