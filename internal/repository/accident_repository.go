package repository

import (
	"sync"
	"time"

	"github.com/keerthi/accidents-backend-go/internal/dataset"
	"github.com/keerthi/accidents-backend-go/internal/models"
	"github.com/keerthi/accidents-backend-go/internal/observability"
)

const dateLayout = "2006-01-02"

// AccidentRepository applies filter criteria to the immutable base table and
// memoizes the resulting views by criteria value. Filtering never mutates
// the base table; identical criteria always yield an identical view.
type AccidentRepository struct {
	table   *dataset.Table
	metrics *observability.Metrics

	mu       sync.Mutex
	cache    map[string]*dataset.View
	order    []string
	capacity int
}

// NewAccidentRepository creates a repository over a loaded table. cacheSize
// bounds the memoized view cache; zero disables memoization.
func NewAccidentRepository(table *dataset.Table, cacheSize int, metrics *observability.Metrics) *AccidentRepository {
	return &AccidentRepository{
		table:    table,
		metrics:  metrics,
		cache:    make(map[string]*dataset.View),
		capacity: cacheSize,
	}
}

// Table returns the base table.
func (r *AccidentRepository) Table() *dataset.Table { return r.table }

// Filter returns the view of the base table matching the criteria. All
// dimension predicates are intersected. Rows with unparsable timestamps are
// excluded from every time-based predicate, and therefore from the view.
func (r *AccidentRepository) Filter(filter models.AccidentFilter) *dataset.View {
	key := filter.Key()

	r.mu.Lock()
	if v, ok := r.cache[key]; ok {
		r.mu.Unlock()
		r.metrics.FilterCacheHits.Inc()
		return v
	}
	r.mu.Unlock()
	r.metrics.FilterCacheMisses.Inc()

	v := r.apply(filter)

	r.mu.Lock()
	if r.capacity > 0 {
		if _, ok := r.cache[key]; !ok {
			if len(r.order) >= r.capacity {
				oldest := r.order[0]
				r.order = r.order[1:]
				delete(r.cache, oldest)
			}
			r.cache[key] = v
			r.order = append(r.order, key)
		}
	}
	r.mu.Unlock()

	return v
}

func (r *AccidentRepository) apply(filter models.AccidentFilter) *dataset.View {
	t := r.table
	r.metrics.FilterEvaluations.Inc()

	startDay, endDay := r.dateBounds(filter)
	stateSet := codeSet(t.States(), filter.States)
	weatherSet := codeSet(t.Weathers(), filter.Weathers)
	severitySet := intSet(filter.Severities)
	weekdaySet := dayIndexSet(filter.Weekdays)

	rows := make([]int32, 0, t.Len())
	for i := int32(0); i < int32(t.Len()); i++ {
		day := t.Day(i)
		if day == dataset.NullDay {
			continue
		}
		if day < startDay || day > endDay {
			continue
		}
		if h := int(t.Hour(i)); h < filter.HourMin || h > filter.HourMax {
			continue
		}
		if m := int(t.Month(i)); m < filter.MonthMin || m > filter.MonthMax {
			continue
		}
		if weekdaySet != nil {
			if _, ok := weekdaySet[t.Weekday(i)]; !ok {
				continue
			}
		}
		if stateSet != nil {
			if _, ok := stateSet[t.StateCode(i)]; !ok {
				continue
			}
		}
		if severitySet != nil {
			sev, ok := t.Severity(i)
			if !ok {
				continue
			}
			if _, in := severitySet[sev]; !in {
				continue
			}
		}
		if weatherSet != nil {
			if _, ok := weatherSet[t.WeatherCode(i)]; !ok {
				continue
			}
		}
		rows = append(rows, i)
	}

	r.metrics.FilteredRows.Observe(float64(len(rows)))
	return dataset.NewView(t, rows)
}

// dateBounds resolves the requested date range. An incomplete or unparsable
// range falls back to the full dataset bounds rather than failing.
func (r *AccidentRepository) dateBounds(filter models.AccidentFilter) (int32, int32) {
	start, startErr := time.Parse(dateLayout, filter.StartDate)
	end, endErr := time.Parse(dateLayout, filter.EndDate)
	if startErr == nil && endErr == nil {
		return dataset.EpochDay(start), dataset.EpochDay(end)
	}

	minDay, maxDay, ok := r.table.DayBounds()
	if !ok {
		// No row carries a parsable timestamp; the date predicate excludes
		// everything regardless of bounds.
		return 0, -1
	}
	return minDay, maxDay
}

// codeSet resolves selected labels to dictionary codes. A nil result means
// the dimension is unrestricted; unknown labels simply match nothing.
func codeSet(dict *dataset.Dictionary, labels []string) map[int32]struct{} {
	if len(labels) == 0 {
		return nil
	}
	set := make(map[int32]struct{}, len(labels))
	for _, label := range labels {
		if code, ok := dict.Code(label); ok {
			set[code] = struct{}{}
		}
	}
	return set
}

func intSet(values []int) map[int]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func dayIndexSet(names []string) map[int8]struct{} {
	if len(names) == 0 {
		return nil
	}
	set := make(map[int8]struct{}, len(names))
	for _, name := range names {
		if idx, ok := dataset.WeekdayIndex(name); ok {
			set[idx] = struct{}{}
		}
	}
	return set
}
