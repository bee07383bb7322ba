package database

import (
	"database/sql"
	"fmt"
)

// AccidentsTable is the table written by the ingest tool and read by the
// dataset loader. Column values mirror the source CSV; NULL marks a missing
// or unparsable value.
const AccidentsTable = "accidents"

const createAccidentsSQL = `
	CREATE TABLE IF NOT EXISTS accidents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time TEXT,
		state TEXT,
		city TEXT,
		weather_condition TEXT,
		severity INTEGER,
		start_lat REAL,
		start_lng REAL,
		visibility REAL,
		temperature REAL,
		wind_speed REAL
	)
`

// EnsureSchema creates the accidents table if it does not exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(createAccidentsSQL); err != nil {
		return fmt.Errorf("failed to create accidents table: %w", err)
	}
	return nil
}
