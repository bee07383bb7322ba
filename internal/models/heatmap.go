package models

// MapPoint represents a single accident location for map rendering
type MapPoint struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Severity int     `json:"severity,omitempty"` // optional heatmap intensity
}

// MapCenter is the mean coordinate of the returned points, used as the
// initial map focus.
type MapCenter struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapResponse represents the map points API response. Total counts geocoded
// rows before sampling; Sampled is true when the cap was applied.
type MapResponse struct {
	Points  []MapPoint `json:"points"`
	Count   int        `json:"count"`
	Total   int        `json:"total"`
	Sampled bool       `json:"sampled"`
	Center  *MapCenter `json:"center,omitempty"`
}
