package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens the attempt database and ensures its schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:knolage.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/knolage?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

// TestId is a plain reference: tests live in a JSON collection, not in
// this database, so no foreign key can enforce it.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS TestAttempt (
  Id INTEGER PRIMARY KEY AUTOINCREMENT,
  TestId TEXT,
  CompletedAt DATETIME,
  Score INTEGER NOT NULL DEFAULT 0,
  MaxScore INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS TestAttemptAnswer (
  Id INTEGER PRIMARY KEY AUTOINCREMENT,
  AttemptId INTEGER NOT NULL,
  QuestionId TEXT,
  SelectedOptionId TEXT,
  IsCorrect BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS event_log (
  offset INTEGER PRIMARY KEY AUTOINCREMENT,
  site_id TEXT NOT NULL DEFAULT 'local',
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS TestAttempt (
  Id BIGSERIAL PRIMARY KEY,
  TestId TEXT,
  CompletedAt TIMESTAMPTZ,
  Score INTEGER NOT NULL DEFAULT 0,
  MaxScore INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS TestAttemptAnswer (
  Id BIGSERIAL PRIMARY KEY,
  AttemptId BIGINT NOT NULL,
  QuestionId TEXT,
  SelectedOptionId TEXT,
  IsCorrect BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" BIGSERIAL PRIMARY KEY,
  site_id TEXT NOT NULL DEFAULT 'local',
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
