package correlation

import (
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

var testBase = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func ptr(f float64) *float64 {
	return &f
}

// kwEvent builds an event with region and keywords, no coordinates.
func kwEvent(id string, ts time.Time, region string, keywords ...string) models.Event {
	return models.Event{
		ID:        id,
		Title:     "event " + id,
		Timestamp: ts,
		Region:    region,
		Category:  "unrest",
		Source:    "test",
		Keywords:  keywords,
	}
}

// geoEvent builds an event with coordinates.
func geoEvent(id string, ts time.Time, lat, lon float64) models.Event {
	ev := kwEvent(id, ts, "")
	ev.Latitude = ptr(lat)
	ev.Longitude = ptr(lon)
	return ev
}

func defaultEngine() *Engine {
	return New(DefaultConfig())
}
