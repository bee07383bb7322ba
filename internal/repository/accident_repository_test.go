package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keerthi/accidents-backend-go/internal/dataset"
	"github.com/keerthi/accidents-backend-go/internal/models"
	"github.com/keerthi/accidents-backend-go/internal/observability"
)

// Row 5 has an unparsable timestamp; row 6 has no coordinates and no wind
// speed. Hours across rows 0-4,6 are 5, 6, 8, 10, 9, 12.
const fixtureCSV = `Start_Time,State,City,Weather_Condition,Severity,Start_Lat,Start_Lng,Visibility(mi),Temperature(F),Wind_Speed(mph)
2023-01-02 05:00:00,CA,Los Angeles,Clear,1,34.05,-118.24,10,60,5
2023-01-03 06:30:00,CA,San Diego,Rain,2,32.72,-117.16,5,55,10
2023-02-04 08:15:00,NY,New York,Snow,3,40.71,-74.00,2,30,15
2023-03-05 10:45:00,TX,Houston,Clear,2,29.76,-95.36,10,70,8
2023-03-06 09:00:00,CA,Los Angeles,Fog,1,34.05,-118.24,1,58,3
not-a-date,FL,Miami,Clear,4,25.76,-80.19,9,80,12
2023-01-09 12:00:00,WA,Seattle,Rain,2,,,8,48,
`

func loadFixture(t *testing.T) *dataset.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accidents.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))
	tbl, err := dataset.Load(path, zerolog.Nop())
	require.NoError(t, err)
	return tbl
}

func newTestRepo(t *testing.T) *AccidentRepository {
	t.Helper()
	return NewAccidentRepository(loadFixture(t), 8, observability.NewMetricsForTesting())
}

func viewRows(v *dataset.View) []int32 {
	rows := make([]int32, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		rows = append(rows, v.Row(i))
	}
	return rows
}

func TestFilterNoCriteria(t *testing.T) {
	repo := newTestRepo(t)
	v := repo.Filter(models.AccidentFilter{HourMax: 23, MonthMin: 1, MonthMax: 12})

	// The unparsable-timestamp row is excluded from every time-based filter.
	assert.Equal(t, []int32{0, 1, 2, 3, 4, 6}, viewRows(v))
}

func TestFilterIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	filter := models.AccidentFilter{States: []string{"CA"}, HourMax: 23, MonthMin: 1, MonthMax: 12}

	first := viewRows(repo.Filter(filter))
	second := viewRows(repo.Filter(filter))
	assert.Equal(t, first, second)

	// Also without memoization.
	uncached := NewAccidentRepository(repo.Table(), 0, observability.NewMetricsForTesting())
	assert.Equal(t, first, viewRows(uncached.Filter(filter)))
}

func TestFilterSubsetOfBase(t *testing.T) {
	repo := newTestRepo(t)
	v := repo.Filter(models.AccidentFilter{Weathers: []string{"Rain"}, HourMax: 23, MonthMin: 1, MonthMax: 12})

	seen := make(map[int32]bool)
	for _, row := range viewRows(v) {
		assert.GreaterOrEqual(t, row, int32(0))
		assert.Less(t, int(row), repo.Table().Len())
		assert.False(t, seen[row], "row appears twice")
		seen[row] = true
	}
}

func TestFilterStateMembership(t *testing.T) {
	repo := newTestRepo(t)
	v := repo.Filter(models.AccidentFilter{States: []string{"CA"}, HourMax: 23, MonthMin: 1, MonthMax: 12})
	assert.Equal(t, []int32{0, 1, 4}, viewRows(v))
}

func TestFilterEmptySelectionIsNoOp(t *testing.T) {
	repo := newTestRepo(t)
	base := models.AccidentFilter{HourMax: 23, MonthMin: 1, MonthMax: 12}

	withEmpty := base
	withEmpty.States = []string{}
	withEmpty.Weathers = []string{}
	withEmpty.Severities = []int{}
	withEmpty.Weekdays = []string{}

	assert.Equal(t, viewRows(repo.Filter(base)), viewRows(repo.Filter(withEmpty)))
}

func TestFilterUnknownLabelMatchesNothing(t *testing.T) {
	repo := newTestRepo(t)
	v := repo.Filter(models.AccidentFilter{States: []string{"ZZ"}, HourMax: 23, MonthMin: 1, MonthMax: 12})
	assert.Zero(t, v.Len())
}

func TestFilterHourRange(t *testing.T) {
	repo := newTestRepo(t)
	v := repo.Filter(models.AccidentFilter{HourMin: 6, HourMax: 9, MonthMin: 1, MonthMax: 12})

	// Hours 6, 8, 9 kept; 5, 10, and 12 excluded. Bounds are inclusive.
	assert.Equal(t, []int32{1, 2, 4}, viewRows(v))
}

func TestFilterMonthRange(t *testing.T) {
	repo := newTestRepo(t)
	v := repo.Filter(models.AccidentFilter{HourMax: 23, MonthMin: 1, MonthMax: 1})
	assert.Equal(t, []int32{0, 1, 6}, viewRows(v))
}

func TestFilterWeekday(t *testing.T) {
	repo := newTestRepo(t)
	v := repo.Filter(models.AccidentFilter{Weekdays: []string{"Monday"}, HourMax: 23, MonthMin: 1, MonthMax: 12})
	assert.Equal(t, []int32{0, 4, 6}, viewRows(v))
}

func TestFilterSeverity(t *testing.T) {
	repo := newTestRepo(t)
	v := repo.Filter(models.AccidentFilter{Severities: []int{1}, HourMax: 23, MonthMin: 1, MonthMax: 12})
	assert.Equal(t, []int32{0, 4}, viewRows(v))
}

func TestFilterDateRange(t *testing.T) {
	repo := newTestRepo(t)

	t.Run("explicit inclusive range", func(t *testing.T) {
		v := repo.Filter(models.AccidentFilter{
			StartDate: "2023-01-02", EndDate: "2023-01-09",
			HourMax: 23, MonthMin: 1, MonthMax: 12,
		})
		assert.Equal(t, []int32{0, 1, 6}, viewRows(v))
	})

	t.Run("incomplete range falls back to dataset bounds", func(t *testing.T) {
		onlyStart := repo.Filter(models.AccidentFilter{
			StartDate: "2023-03-01",
			HourMax:   23, MonthMin: 1, MonthMax: 12,
		})
		full := repo.Filter(models.AccidentFilter{HourMax: 23, MonthMin: 1, MonthMax: 12})
		assert.Equal(t, viewRows(full), viewRows(onlyStart))
	})

	t.Run("unparsable endpoint falls back to dataset bounds", func(t *testing.T) {
		v := repo.Filter(models.AccidentFilter{
			StartDate: "01/02/2023", EndDate: "bogus",
			HourMax: 23, MonthMin: 1, MonthMax: 12,
		})
		assert.Equal(t, 6, v.Len())
	})
}

func TestFilterIntersectsDimensions(t *testing.T) {
	repo := newTestRepo(t)
	v := repo.Filter(models.AccidentFilter{
		States:  []string{"CA"},
		HourMin: 6, HourMax: 9,
		MonthMin: 1, MonthMax: 12,
	})
	assert.Equal(t, []int32{1, 4}, viewRows(v))
}

func TestFilterMemoization(t *testing.T) {
	repo := newTestRepo(t)
	filter := models.AccidentFilter{States: []string{"NY", "CA"}, HourMax: 23, MonthMin: 1, MonthMax: 12}

	first := repo.Filter(filter)
	second := repo.Filter(filter)
	assert.Same(t, first, second)

	// Selection order does not defeat the cache.
	reordered := models.AccidentFilter{States: []string{"CA", "NY"}, HourMax: 23, MonthMin: 1, MonthMax: 12}
	assert.Same(t, first, repo.Filter(reordered))
}

func TestFilterCacheEviction(t *testing.T) {
	repo := NewAccidentRepository(loadFixture(t), 1, observability.NewMetricsForTesting())

	a := models.AccidentFilter{States: []string{"CA"}, HourMax: 23, MonthMin: 1, MonthMax: 12}
	b := models.AccidentFilter{States: []string{"NY"}, HourMax: 23, MonthMin: 1, MonthMax: 12}

	first := repo.Filter(a)
	repo.Filter(b) // evicts a
	again := repo.Filter(a)

	assert.NotSame(t, first, again)
	assert.Equal(t, viewRows(first), viewRows(again))
}
