package models

import "time"

// Correlation types emitted by the analysis passes.
const (
	TypeTemporal = "temporal"
	TypeSpatial  = "spatial"
	TypeThematic = "thematic"
	TypeCascade  = "cascade"
)

// Significance tiers derived from scores via fixed thresholds.
const (
	SignificanceHigh   = "high"
	SignificanceMedium = "medium"
	SignificanceLow    = "low"
)

// CorrelationResult is one discovered relationship between two or more
// events. IDs are derived deterministically from the contributing event IDs
// and the correlation type, so identical snapshots yield identical results.
type CorrelationResult struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Score        int       `json:"score"`
	EventIDs     []string  `json:"event_ids"`
	Description  string    `json:"description"`
	Significance string    `json:"significance"`
	CreatedAt    time.Time `json:"created_at"`
}

// TemporalPattern is a recurring-interval sequence of similar events.
type TemporalPattern struct {
	Signature    string      `json:"signature"`
	FrequencyHrs float64     `json:"frequency_hours"`
	Confidence   int         `json:"confidence"`
	LastOccurred []time.Time `json:"last_occurrences"`
}

// GeographicCluster is a group of events within a fixed radius of a seed
// event. The center is the seed's coordinates, not a recomputed centroid.
type GeographicCluster struct {
	ID         string    `json:"id"`
	CenterLat  float64   `json:"center_lat"`
	CenterLon  float64   `json:"center_lon"`
	RadiusKm   float64   `json:"radius_km"`
	EventCount int       `json:"event_count"`
	Categories []string  `json:"categories"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// Report bundles the output of all six analysis passes over one snapshot.
// Collections are independently sorted descending by their ranking key and
// are not deduplicated against each other.
type Report struct {
	GeneratedAt time.Time           `json:"generated_at"`
	EventCount  int                 `json:"event_count"`
	Temporal    []CorrelationResult `json:"temporal"`
	Spatial     []CorrelationResult `json:"spatial"`
	Thematic    []CorrelationResult `json:"thematic"`
	Cascades    []CorrelationResult `json:"cascades"`
	Patterns    []TemporalPattern   `json:"patterns"`
	Clusters    []GeographicCluster `json:"clusters"`
}
