package models

// SummaryMetrics represents the key metric tiles shown above the dashboard.
type SummaryMetrics struct {
	TotalAccidents  int     `json:"total_accidents"`
	AverageSeverity float64 `json:"average_severity"`
	StatesCovered   int     `json:"states_covered"`
	CitiesCovered   int     `json:"cities_covered"`
	WeatherTypes    int     `json:"weather_types"`
}

// CountPoint is one (category label, count) pair for bar charts.
type CountPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SeriesPoint is one (numeric bucket, count) pair for line charts over
// hour-of-day or month.
type SeriesPoint struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// SeverityBoxStats describes the severity distribution under one weather
// condition, in box-plot shape.
type SeverityBoxStats struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// CorrelationResult is the correlation heatmap payload. Sufficient is false
// when no fully populated rows remain after filtering; in that case no
// matrix is produced.
type CorrelationResult struct {
	Sufficient bool        `json:"sufficient"`
	Rows       int         `json:"rows"`
	Columns    []string    `json:"columns,omitempty"`
	Matrix     [][]float64 `json:"matrix,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// FilterOptions lists the selectable values for the sidebar controls.
type FilterOptions struct {
	States     []string      `json:"states"`
	Severities []int         `json:"severities"`
	Weathers   []string      `json:"weathers"`
	Weekdays   []string      `json:"weekdays"`
	MinDate    string        `json:"min_date,omitempty"`
	MaxDate    string        `json:"max_date,omitempty"`
	MapCap     MapCapOptions `json:"map_cap"`
}

// MapCapOptions describes the map sampling cap slider.
type MapCapOptions struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}
