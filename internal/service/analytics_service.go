package service

import (
	"math"
	"sort"
	"strconv"

	"github.com/keerthi/accidents-backend-go/internal/config"
	"github.com/keerthi/accidents-backend-go/internal/dataset"
	"github.com/keerthi/accidents-backend-go/internal/models"
	"github.com/keerthi/accidents-backend-go/internal/stats"
)

// CorrelationColumns are the numeric features entering the correlation
// matrix, in fixed order.
var CorrelationColumns = []string{
	dataset.ColSeverity,
	dataset.ColVisibility,
	dataset.ColTemperature,
	dataset.ColWindSpeed,
}

// AnalyticsService computes dashboard aggregates over a filtered view. Every
// operation is a total function: an empty view yields empty or zero results,
// never an error.
type AnalyticsService struct {
	topN int
}

// NewAnalyticsService creates an analytics service. topN bounds the state
// and weather rankings.
func NewAnalyticsService(topN int) *AnalyticsService {
	return &AnalyticsService{topN: topN}
}

// Summary computes the key metric tiles for a view.
func (s *AnalyticsService) Summary(v *dataset.View) models.SummaryMetrics {
	t := v.Table()

	severities := make([]float64, 0, v.Len())
	states := make(map[int32]struct{})
	cities := make(map[int32]struct{})
	weathers := make(map[int32]struct{})

	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		if sev, ok := t.Severity(row); ok {
			severities = append(severities, float64(sev))
		}
		if c := t.StateCode(row); c != dataset.NullCode {
			states[c] = struct{}{}
		}
		if c := t.CityCode(row); c != dataset.NullCode {
			cities[c] = struct{}{}
		}
		if c := t.WeatherCode(row); c != dataset.NullCode {
			weathers[c] = struct{}{}
		}
	}

	return models.SummaryMetrics{
		TotalAccidents:  v.Len(),
		AverageSeverity: stats.Mean(severities),
		StatesCovered:   len(states),
		CitiesCovered:   len(cities),
		WeatherTypes:    len(weathers),
	}
}

// ByHour counts accidents per hour of day, densely over 0-23.
func (s *AnalyticsService) ByHour(v *dataset.View) []models.SeriesPoint {
	var counts [24]int
	t := v.Table()
	for i := 0; i < v.Len(); i++ {
		if h := t.Hour(v.Row(i)); h != dataset.NullOrdinal {
			counts[h]++
		}
	}

	out := make([]models.SeriesPoint, 24)
	for h, c := range counts {
		out[h] = models.SeriesPoint{Value: h, Count: c}
	}
	return out
}

// ByWeekday counts accidents per weekday in canonical Monday-to-Sunday
// order. Days absent from the view report zero.
func (s *AnalyticsService) ByWeekday(v *dataset.View) []models.CountPoint {
	var counts [7]int
	t := v.Table()
	for i := 0; i < v.Len(); i++ {
		if d := t.Weekday(v.Row(i)); d != dataset.NullOrdinal {
			counts[d]++
		}
	}

	out := make([]models.CountPoint, 7)
	for d, name := range dataset.WeekdayNames {
		out[d] = models.CountPoint{Label: name, Count: counts[d]}
	}
	return out
}

// ByMonth counts accidents per calendar month, densely over 1-12.
func (s *AnalyticsService) ByMonth(v *dataset.View) []models.SeriesPoint {
	var counts [13]int
	t := v.Table()
	for i := 0; i < v.Len(); i++ {
		if m := t.Month(v.Row(i)); m != dataset.NullOrdinal {
			counts[m]++
		}
	}

	out := make([]models.SeriesPoint, 0, 12)
	for m := 1; m <= 12; m++ {
		out = append(out, models.SeriesPoint{Value: m, Count: counts[m]})
	}
	return out
}

// BySeverity counts accidents per severity level, ascending.
func (s *AnalyticsService) BySeverity(v *dataset.View) []models.CountPoint {
	counts := make(map[int]int)
	t := v.Table()
	for i := 0; i < v.Len(); i++ {
		if sev, ok := t.Severity(v.Row(i)); ok {
			counts[sev]++
		}
	}

	levels := make([]int, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	out := make([]models.CountPoint, 0, len(levels))
	for _, level := range levels {
		out = append(out, models.CountPoint{Label: strconv.Itoa(level), Count: counts[level]})
	}
	return out
}

// TopStates ranks states by accident count, descending, bounded to topN.
// Ties keep the first-appearance order of the grouping.
func (s *AnalyticsService) TopStates(v *dataset.View) []models.CountPoint {
	return s.topByCode(v, v.Table().States(), func(t *dataset.Table, row int32) int32 {
		return t.StateCode(row)
	})
}

// TopWeather ranks weather conditions by frequency, descending, bounded to
// topN.
func (s *AnalyticsService) TopWeather(v *dataset.View) []models.CountPoint {
	return s.topByCode(v, v.Table().Weathers(), func(t *dataset.Table, row int32) int32 {
		return t.WeatherCode(row)
	})
}

func (s *AnalyticsService) topByCode(v *dataset.View, dict *dataset.Dictionary, code func(*dataset.Table, int32) int32) []models.CountPoint {
	t := v.Table()
	counts := make([]int, dict.Len())
	for i := 0; i < v.Len(); i++ {
		if c := code(t, v.Row(i)); c != dataset.NullCode {
			counts[c]++
		}
	}

	// Codes are assigned in first-appearance order, so iterating them in
	// ascending order preserves the natural tie-break.
	out := make([]models.CountPoint, 0, dict.Len())
	for c, n := range counts {
		if n > 0 {
			out = append(out, models.CountPoint{Label: dict.Label(int32(c)), Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if len(out) > s.topN {
		out = out[:s.topN]
	}
	return out
}

// SeverityByWeather computes the severity distribution under each of the
// most frequent weather conditions, in box-plot shape.
func (s *AnalyticsService) SeverityByWeather(v *dataset.View) []models.SeverityBoxStats {
	t := v.Table()
	groups := make(map[int32][]float64)
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		c := t.WeatherCode(row)
		if c == dataset.NullCode {
			continue
		}
		if sev, ok := t.Severity(row); ok {
			groups[c] = append(groups[c], float64(sev))
		}
	}

	codes := make([]int32, 0, len(groups))
	for c := range groups {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	sort.SliceStable(codes, func(i, j int) bool { return len(groups[codes[i]]) > len(groups[codes[j]]) })
	if len(codes) > s.topN {
		codes = codes[:s.topN]
	}

	out := make([]models.SeverityBoxStats, 0, len(codes))
	for _, c := range codes {
		values := groups[c]
		min, q1, median, q3, max := stats.FiveNumberSummary(values)
		out = append(out, models.SeverityBoxStats{
			Label:  t.Weathers().Label(c),
			Count:  len(values),
			Min:    min,
			Q1:     q1,
			Median: median,
			Q3:     q3,
			Max:    max,
		})
	}
	return out
}

// Correlation computes the Pearson correlation matrix over severity,
// visibility, temperature, and wind speed, using only rows where all four
// are present. Zero such rows yields an explicit insufficient-data result.
func (s *AnalyticsService) Correlation(v *dataset.View) models.CorrelationResult {
	t := v.Table()
	columns := make([][]float64, len(CorrelationColumns))

	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		sev, ok := t.Severity(row)
		if !ok {
			continue
		}
		vis := t.Visibility(row)
		temp := t.Temperature(row)
		wind := t.WindSpeed(row)
		if math.IsNaN(vis) || math.IsNaN(temp) || math.IsNaN(wind) {
			continue
		}
		columns[0] = append(columns[0], float64(sev))
		columns[1] = append(columns[1], vis)
		columns[2] = append(columns[2], temp)
		columns[3] = append(columns[3], wind)
	}

	rows := len(columns[0])
	if rows == 0 {
		return models.CorrelationResult{
			Sufficient: false,
			Message:    "not enough data for correlation",
		}
	}

	return models.CorrelationResult{
		Sufficient: true,
		Rows:       rows,
		Columns:    CorrelationColumns,
		Matrix:     stats.CorrelationMatrix(columns),
	}
}

// FilterOptions lists the selectable sidebar values for the base table.
func (s *AnalyticsService) FilterOptions(t *dataset.Table, mapCapDefault int) models.FilterOptions {
	states := t.States().Labels()
	sort.Strings(states)
	weathers := t.Weathers().Labels()
	sort.Strings(weathers)

	severitySet := make(map[int]struct{})
	for i := int32(0); i < int32(t.Len()); i++ {
		if sev, ok := t.Severity(i); ok {
			severitySet[sev] = struct{}{}
		}
	}
	severities := make([]int, 0, len(severitySet))
	for sev := range severitySet {
		severities = append(severities, sev)
	}
	sort.Ints(severities)

	opts := models.FilterOptions{
		States:     states,
		Severities: severities,
		Weathers:   weathers,
		Weekdays:   dataset.WeekdayNames[:],
		MapCap: models.MapCapOptions{
			Min:     config.MapSampleCapMin,
			Max:     config.MapSampleCapMax,
			Default: mapCapDefault,
		},
	}
	if minDay, maxDay, ok := t.DayBounds(); ok {
		opts.MinDate = dataset.DayTime(minDay).Format("2006-01-02")
		opts.MaxDate = dataset.DayTime(maxDay).Format("2006-01-02")
	}
	return opts
}
