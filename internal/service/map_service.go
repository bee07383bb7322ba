package service

import (
	"math/rand"
	"sort"

	"github.com/keerthi/accidents-backend-go/internal/config"
	"github.com/keerthi/accidents-backend-go/internal/dataset"
	"github.com/keerthi/accidents-backend-go/internal/models"
)

// MapService prepares geocoded accident points for map rendering. When the
// filtered set exceeds the cap it takes a reproducible random sample so the
// payload stays bounded; the fixed seed keeps repeated renders identical.
type MapService struct {
	defaultCap int
	seed       int64
}

// NewMapService creates a map service with the configured default cap and
// sampling seed.
func NewMapService(defaultCap int, seed int64) *MapService {
	return &MapService{defaultCap: defaultCap, seed: seed}
}

// DefaultCap returns the configured default sampling cap.
func (s *MapService) DefaultCap() int { return s.defaultCap }

// Points returns the geocoded points of a view, sampled down to cap rows
// when necessary. A non-positive cap selects the configured default; any cap
// is clamped to the slider range.
func (s *MapService) Points(v *dataset.View, cap int) models.MapResponse {
	if cap <= 0 {
		cap = s.defaultCap
	}
	cap = config.ClampSampleCap(cap)

	t := v.Table()
	geocoded := make([]int32, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		if _, _, ok := t.Coords(row); ok {
			geocoded = append(geocoded, row)
		}
	}

	total := len(geocoded)
	sampled := total > cap
	if sampled {
		geocoded = s.sample(geocoded, cap)
	}

	points := make([]models.MapPoint, 0, len(geocoded))
	var sumLat, sumLng float64
	for _, row := range geocoded {
		lat, lng, _ := t.Coords(row)
		sev, _ := t.Severity(row)
		points = append(points, models.MapPoint{Lat: lat, Lng: lng, Severity: sev})
		sumLat += lat
		sumLng += lng
	}

	resp := models.MapResponse{
		Points:  points,
		Count:   len(points),
		Total:   total,
		Sampled: sampled,
	}
	if len(points) > 0 {
		resp.Center = &models.MapCenter{
			Lat: sumLat / float64(len(points)),
			Lng: sumLng / float64(len(points)),
		}
	}
	return resp
}

// sample picks n rows without replacement using a fixed-seed partial shuffle,
// then restores row order so output is stable for chart diffing.
func (s *MapService) sample(rows []int32, n int) []int32 {
	shuffled := make([]int32, len(rows))
	copy(shuffled, rows)

	rng := rand.New(rand.NewSource(s.seed))
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	picked := shuffled[:n]
	sort.Slice(picked, func(i, j int) bool { return picked[i] < picked[j] })
	return picked
}
