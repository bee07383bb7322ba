// Command ingest converts the cleaned accidents CSV into a SQLite database
// for faster server startup.
package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/keerthi/accidents-backend-go/internal/database"
	"github.com/keerthi/accidents-backend-go/internal/dataset"
)

func main() {
	in := flag.String("in", "", "input CSV path")
	out := flag.String("out", "./data/accidents.db", "output SQLite path")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	rows, err := ingest(*in, *out)
	if err != nil {
		log.Fatal("Ingest failed:", err)
	}
	log.Printf("Ingested %d rows into %s", rows, *out)
}

var columns = []string{
	dataset.ColStartTime, dataset.ColState, dataset.ColCity, dataset.ColWeather,
	dataset.ColSeverity, dataset.ColLat, dataset.ColLng,
	dataset.ColVisibility, dataset.ColTemperature, dataset.ColWindSpeed,
}

func ingest(csvPath, dbPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}
	for _, name := range columns {
		if _, ok := colIdx[name]; !ok {
			return 0, fmt.Errorf("CSV missing required column %s", name)
		}
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		return 0, err
	}

	count := 0
	err = database.Transaction(db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO accidents (start_time, state, city, weather_condition,
				severity, start_lat, start_lng, visibility, temperature, wind_speed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for {
			record, err := r.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read CSV row: %w", err)
			}

			if _, err := stmt.Exec(
				nullableText(record[colIdx[dataset.ColStartTime]]),
				nullableText(record[colIdx[dataset.ColState]]),
				nullableText(record[colIdx[dataset.ColCity]]),
				nullableText(record[colIdx[dataset.ColWeather]]),
				nullableInt(record[colIdx[dataset.ColSeverity]]),
				nullableReal(record[colIdx[dataset.ColLat]]),
				nullableReal(record[colIdx[dataset.ColLng]]),
				nullableReal(record[colIdx[dataset.ColVisibility]]),
				nullableReal(record[colIdx[dataset.ColTemperature]]),
				nullableReal(record[colIdx[dataset.ColWindSpeed]]),
			); err != nil {
				return fmt.Errorf("failed to insert row: %w", err)
			}
			count++
		}
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func nullableText(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(s string) interface{} {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return n
}

func nullableReal(s string) interface{} {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return v
}
