package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

const sqliteDialect = "sqlite3"

// Up runs all pending SQL migrations found in migrationsDir.
func Up(db *sql.DB, migrationsDir string) error {
	if err := prepare(); err != nil {
		return err
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}

// Version returns the current schema version.
func Version(db *sql.DB) (int64, error) {
	if err := prepare(); err != nil {
		return 0, err
	}

	v, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("read goose version: %w", err)
	}
	return v, nil
}

func prepare() error {
	goose.SetLogger(log.StandardLogger())
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}
