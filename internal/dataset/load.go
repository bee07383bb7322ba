package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Source column names, matching the cleaned US accidents dataset.
const (
	ColStartTime   = "Start_Time"
	ColState       = "State"
	ColCity        = "City"
	ColWeather     = "Weather_Condition"
	ColSeverity    = "Severity"
	ColLat         = "Start_Lat"
	ColLng         = "Start_Lng"
	ColVisibility  = "Visibility(mi)"
	ColTemperature = "Temperature(F)"
	ColWindSpeed   = "Wind_Speed(mph)"
)

var requiredColumns = []string{
	ColStartTime, ColState, ColCity, ColWeather, ColSeverity,
	ColLat, ColLng, ColVisibility, ColTemperature, ColWindSpeed,
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339,
}

// Load reads the accident dataset from path into an immutable Table. The
// source format is chosen by extension: .csv, or a SQLite database produced
// by the ingest tool (.db/.sqlite/.sqlite3). The caller owns the returned
// handle and is expected to load once per process and inject it.
func Load(path string, logger zerolog.Logger) (*Table, error) {
	var (
		t   *Table
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		t, err = loadCSV(path)
	case ".db", ".sqlite", ".sqlite3":
		t, err = loadSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	badTimestamps := 0
	for _, d := range t.day {
		if d == NullDay {
			badTimestamps++
		}
	}
	logger.Info().
		Str("path", path).
		Int("rows", t.Len()).
		Int("states", t.states.Len()).
		Int("unparsable_timestamps", badTimestamps).
		Msg("dataset loaded")

	return t, nil
}

// rawRow carries one source row before interning. Missing categorical values
// are empty strings; missing numerics are NaN; missing severity is -1.
type rawRow struct {
	startTime string
	state     string
	city      string
	weather   string
	severity  int
	lat       float64
	lng       float64
	visible   float64
	temp      float64
	wind      float64
}

type tableBuilder struct {
	t *Table
}

func newTableBuilder() *tableBuilder {
	return &tableBuilder{t: &Table{
		states:   NewDictionary(),
		cities:   NewDictionary(),
		weathers: NewDictionary(),
		minDay:   NullDay,
		maxDay:   NullDay,
	}}
}

func (b *tableBuilder) add(r rawRow) {
	t := b.t
	t.n++

	day, hour, month, weekday := deriveCalendar(r.startTime)
	t.day = append(t.day, day)
	t.hour = append(t.hour, hour)
	t.month = append(t.month, month)
	t.weekday = append(t.weekday, weekday)

	t.state = append(t.state, internOrNull(t.states, r.state))
	t.city = append(t.city, internOrNull(t.cities, r.city))
	t.weather = append(t.weather, internOrNull(t.weathers, r.weather))

	sev := NullSeverity
	if r.severity >= 0 {
		sev = int16(r.severity)
	}
	t.severity = append(t.severity, sev)

	t.lat = append(t.lat, r.lat)
	t.lng = append(t.lng, r.lng)
	t.visibility = append(t.visibility, r.visible)
	t.temperature = append(t.temperature, r.temp)
	t.windSpeed = append(t.windSpeed, r.wind)

	if day != NullDay {
		if t.minDay == NullDay || day < t.minDay {
			t.minDay = day
		}
		if t.maxDay == NullDay || day > t.maxDay {
			t.maxDay = day
		}
	}
}

func (b *tableBuilder) finish() *Table {
	return b.t
}

func internOrNull(d *Dictionary, label string) int32 {
	if label == "" {
		return NullCode
	}
	return d.Intern(label)
}

// deriveCalendar parses a source timestamp and derives the calendar fields.
// An unparsable timestamp yields null fields, never an error.
func deriveCalendar(s string) (day int32, hour, month, weekday int8) {
	ts, ok := parseTimestamp(s)
	if !ok {
		return NullDay, NullOrdinal, NullOrdinal, NullOrdinal
	}
	day = EpochDay(ts)
	hour = int8(ts.Hour())
	month = int8(ts.Month())
	weekday = int8((int(ts.Weekday()) + 6) % 7) // Monday-first
	return day, hour, month, weekday
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := colIdx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset missing required columns: %s", strings.Join(missing, ", "))
	}

	b := newTableBuilder()
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}

		b.add(rawRow{
			startTime: record[colIdx[ColStartTime]],
			state:     record[colIdx[ColState]],
			city:      record[colIdx[ColCity]],
			weather:   record[colIdx[ColWeather]],
			severity:  parseSeverity(record[colIdx[ColSeverity]]),
			lat:       parseFloat(record[colIdx[ColLat]]),
			lng:       parseFloat(record[colIdx[ColLng]]),
			visible:   parseFloat(record[colIdx[ColVisibility]]),
			temp:      parseFloat(record[colIdx[ColTemperature]]),
			wind:      parseFloat(record[colIdx[ColWindSpeed]]),
		})
	}

	return b.finish(), nil
}

func parseSeverity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return -1
	}
	return n
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
