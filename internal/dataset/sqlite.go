package dataset

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/keerthi/accidents-backend-go/internal/database"
)

// loadSQLite reads the accidents table produced by the ingest tool.
func loadSQLite(path string) (*Table, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT start_time, state, city, weather_condition, severity,
			start_lat, start_lng, visibility, temperature, wind_speed
		FROM ` + database.AccidentsTable + `
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accidents: %w", err)
	}
	defer rows.Close()

	b := newTableBuilder()
	for rows.Next() {
		var (
			startTime, state, city, weather sql.NullString
			severity                        sql.NullInt64
			lat, lng, vis, temp, wind       sql.NullFloat64
		)
		if err := rows.Scan(&startTime, &state, &city, &weather, &severity,
			&lat, &lng, &vis, &temp, &wind); err != nil {
			return nil, fmt.Errorf("failed to scan accident row: %w", err)
		}

		sev := -1
		if severity.Valid && severity.Int64 >= 0 {
			sev = int(severity.Int64)
		}
		b.add(rawRow{
			startTime: startTime.String,
			state:     state.String,
			city:      city.String,
			weather:   weather.String,
			severity:  sev,
			lat:       nullableFloat(lat),
			lng:       nullableFloat(lng),
			visible:   nullableFloat(vis),
			temp:      nullableFloat(temp),
			wind:      nullableFloat(wind),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accidents: %w", err)
	}

	return b.finish(), nil
}

func nullableFloat(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
