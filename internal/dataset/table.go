package dataset

import (
	"math"
	"time"
)

// Null sentinels for columns whose source value was missing or unparsable.
// Float columns use NaN instead.
const (
	NullCode     int32 = -1
	NullSeverity int16 = -1
	NullOrdinal  int8  = -1
)

// NullDay marks rows whose timestamp could not be parsed.
const NullDay = int32(math.MinInt32)

// WeekdayNames lists weekday labels in canonical Monday-first order.
var WeekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayIndex maps a weekday label to its Monday-first index.
func WeekdayIndex(name string) (int8, bool) {
	for i, n := range WeekdayNames {
		if n == name {
			return int8(i), true
		}
	}
	return NullOrdinal, false
}

// EpochDay converts a timestamp to whole days since the Unix epoch (UTC).
func EpochDay(t time.Time) int32 {
	t = t.UTC()
	return int32(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// DayTime converts an epoch day back to a midnight UTC timestamp.
func DayTime(d int32) time.Time {
	return time.Unix(int64(d)*86400, 0).UTC()
}

// Dictionary interns categorical labels as dense integer codes, preserving
// first-appearance order. Codes index into the label slice.
type Dictionary struct {
	codes  map[string]int32
	labels []string
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{codes: make(map[string]int32)}
}

// Intern returns the code for a label, assigning the next code on first use.
func (d *Dictionary) Intern(label string) int32 {
	if code, ok := d.codes[label]; ok {
		return code
	}
	code := int32(len(d.labels))
	d.codes[label] = code
	d.labels = append(d.labels, label)
	return code
}

// Code looks up the code for a label without interning it.
func (d *Dictionary) Code(label string) (int32, bool) {
	code, ok := d.codes[label]
	return code, ok
}

// Label returns the display label for a code.
func (d *Dictionary) Label(code int32) string {
	if code < 0 || int(code) >= len(d.labels) {
		return ""
	}
	return d.labels[code]
}

// Len returns the number of distinct labels.
func (d *Dictionary) Len() int {
	return len(d.labels)
}

// Labels returns a copy of all labels in first-appearance order.
func (d *Dictionary) Labels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

// Table is the immutable in-memory accident dataset. Columns are stored
// column-wise; categorical columns hold dictionary codes.
type Table struct {
	n int

	day     []int32 // epoch days, NullDay when the timestamp was unparsable
	hour    []int8  // 0-23, NullOrdinal when unparsable
	month   []int8  // 1-12, NullOrdinal when unparsable
	weekday []int8  // Monday-first 0-6, NullOrdinal when unparsable

	state   []int32
	city    []int32
	weather []int32

	severity    []int16
	lat         []float64
	lng         []float64
	visibility  []float64
	temperature []float64
	windSpeed   []float64

	states   *Dictionary
	cities   *Dictionary
	weathers *Dictionary

	minDay int32
	maxDay int32
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.n }

// Day returns the epoch day for a row, or NullDay.
func (t *Table) Day(i int32) int32 { return t.day[i] }

// Hour returns the hour of day for a row, or NullOrdinal.
func (t *Table) Hour(i int32) int8 { return t.hour[i] }

// Month returns the calendar month for a row, or NullOrdinal.
func (t *Table) Month(i int32) int8 { return t.month[i] }

// Weekday returns the Monday-first weekday index for a row, or NullOrdinal.
func (t *Table) Weekday(i int32) int8 { return t.weekday[i] }

// StateCode returns the interned state code for a row, or NullCode.
func (t *Table) StateCode(i int32) int32 { return t.state[i] }

// CityCode returns the interned city code for a row, or NullCode.
func (t *Table) CityCode(i int32) int32 { return t.city[i] }

// WeatherCode returns the interned weather code for a row, or NullCode.
func (t *Table) WeatherCode(i int32) int32 { return t.weather[i] }

// Severity returns the severity level for a row; ok is false when missing.
func (t *Table) Severity(i int32) (int, bool) {
	s := t.severity[i]
	return int(s), s != NullSeverity
}

// Coords returns the coordinates for a row; ok is false when either is missing.
func (t *Table) Coords(i int32) (lat, lng float64, ok bool) {
	lat, lng = t.lat[i], t.lng[i]
	return lat, lng, !math.IsNaN(lat) && !math.IsNaN(lng)
}

// Visibility returns the visibility in miles, NaN when missing.
func (t *Table) Visibility(i int32) float64 { return t.visibility[i] }

// Temperature returns the temperature in Fahrenheit, NaN when missing.
func (t *Table) Temperature(i int32) float64 { return t.temperature[i] }

// WindSpeed returns the wind speed in mph, NaN when missing.
func (t *Table) WindSpeed(i int32) float64 { return t.windSpeed[i] }

// States returns the state label dictionary.
func (t *Table) States() *Dictionary { return t.states }

// Cities returns the city label dictionary.
func (t *Table) Cities() *Dictionary { return t.cities }

// Weathers returns the weather label dictionary.
func (t *Table) Weathers() *Dictionary { return t.weathers }

// DayBounds returns the min and max epoch day over rows with parsable
// timestamps. ok is false when no such row exists.
func (t *Table) DayBounds() (minDay, maxDay int32, ok bool) {
	return t.minDay, t.maxDay, t.minDay != NullDay
}

// View is an immutable filtered subset of a table, identified by row index.
type View struct {
	table *Table
	rows  []int32
}

// NewView wraps a row index list over a table.
func NewView(t *Table, rows []int32) *View {
	return &View{table: t, rows: rows}
}

// Table returns the underlying base table.
func (v *View) Table() *Table { return v.table }

// Len returns the number of rows in the view.
func (v *View) Len() int { return len(v.rows) }

// Row returns the base-table row index at position i.
func (v *View) Row(i int) int32 { return v.rows[i] }
