package database

import (
	"database/sql"
	"fmt"
)

// CreateTables creates all required tables in the database.
func CreateTables(db *sql.DB) error {
	if err := createUsersTable(db); err != nil {
		return err
	}
	if err := createShelvesTable(db); err != nil {
		return err
	}
	return createChemicalsTable(db)
}

func createUsersTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func createShelvesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS shelves (
		id TEXT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL DEFAULT '',
		shelf_initial VARCHAR(16) NOT NULL DEFAULT '',
		last_updated TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_bottle_suffix INTEGER NOT NULL DEFAULT 0
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create shelves table: %w", err)
	}
	return nil
}

func createChemicalsTable(db *sql.DB) error {
	// shelf_id is deliberately not a foreign key: the reference is checked by
	// the application at creation time and a shelf may be force-deleted while
	// chemicals still point at it. The unique constraint on bottle_number is
	// what closes the concurrent check-then-insert race.
	query := `
	CREATE TABLE IF NOT EXISTS chemicals (
		id TEXT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		shelf_id TEXT NOT NULL,
		formula VARCHAR(255) NOT NULL DEFAULT '',
		formula_latex VARCHAR(255) NOT NULL DEFAULT '',
		synonyms TEXT[] NOT NULL DEFAULT '{}',
		msds_url VARCHAR(500) NOT NULL DEFAULT '',
		structure_2d_url VARCHAR(500) NOT NULL DEFAULT '',
		bottle_number VARCHAR(64) UNIQUE NOT NULL,
		is_concentrated BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create chemicals table: %w", err)
	}
	return nil
}
