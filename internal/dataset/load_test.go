package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = `Start_Time,State,City,Weather_Condition,Severity,Start_Lat,Start_Lng,Visibility(mi),Temperature(F),Wind_Speed(mph)
2023-01-02 05:00:00,CA,Los Angeles,Clear,1,34.05,-118.24,10,60,5
2023-01-03 06:30:00,CA,San Diego,Rain,2,32.72,-117.16,5,55,10
not-a-date,FL,Miami,Clear,4,25.76,-80.19,9,80,12
2023-01-09 12:00:00,WA,Seattle,Rain,2,,,8,48,
`

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accidents.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	tbl, err := Load(writeCSV(t, fixtureCSV), zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 4, tbl.Len())

	t.Run("derived calendar fields", func(t *testing.T) {
		// 2023-01-02 was a Monday.
		assert.Equal(t, int8(0), tbl.Weekday(0))
		assert.Equal(t, int8(5), tbl.Hour(0))
		assert.Equal(t, int8(1), tbl.Month(0))
		assert.Equal(t, int8(1), tbl.Weekday(1)) // Tuesday
	})

	t.Run("unparsable timestamp yields null derived fields", func(t *testing.T) {
		assert.Equal(t, NullDay, tbl.Day(2))
		assert.Equal(t, NullOrdinal, tbl.Hour(2))
		assert.Equal(t, NullOrdinal, tbl.Month(2))
		assert.Equal(t, NullOrdinal, tbl.Weekday(2))

		// The row itself is kept, with its other fields intact.
		sev, ok := tbl.Severity(2)
		require.True(t, ok)
		assert.Equal(t, 4, sev)
	})

	t.Run("missing numerics become nulls", func(t *testing.T) {
		_, _, ok := tbl.Coords(3)
		assert.False(t, ok)
		assert.True(t, tbl.WindSpeed(3) != tbl.WindSpeed(3)) // NaN
		assert.Equal(t, 8.0, tbl.Visibility(3))
	})

	t.Run("categorical interning", func(t *testing.T) {
		assert.Equal(t, []string{"CA", "FL", "WA"}, tbl.States().Labels())
		code, ok := tbl.States().Code("CA")
		require.True(t, ok)
		assert.Equal(t, code, tbl.StateCode(0))
		assert.Equal(t, code, tbl.StateCode(1))
	})

	t.Run("day bounds skip unparsable rows", func(t *testing.T) {
		minDay, maxDay, ok := tbl.DayBounds()
		require.True(t, ok)
		assert.Equal(t, "2023-01-02", DayTime(minDay).Format("2006-01-02"))
		assert.Equal(t, "2023-01-09", DayTime(maxDay).Format("2006-01-02"))
	})
}

func TestLoadMissingColumns(t *testing.T) {
	path := writeCSV(t, "Start_Time,State\n2023-01-02 05:00:00,CA\n")
	_, err := Load(path, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "Severity")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), zerolog.Nop())
	require.Error(t, err)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accidents.parquet")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err := Load(path, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dataset format")
}

func TestParseTimestampLayouts(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2023-01-02 05:00:00", true},
		{"2023-01-02 05:00:00.123456", true},
		{"2023-01-02T05:00:00Z", true},
		{"02/01/2023", false},
		{"", false},
	}
	for _, tc := range cases {
		_, ok := parseTimestamp(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
}
