// Package correlation implements the batch analysis passes that discover
// latent relationships in an event snapshot: temporal and spatial proximity,
// recurring themes, cause-effect cascades, periodic patterns, and geographic
// clusters. Every pass is a pure function over the immutable snapshot; the
// engine never mutates or retains the input.
package correlation

import (
	"context"
	"sync"
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// Config holds the analysis thresholds. All passes read it immutably.
type Config struct {
	TemporalWindowHours     float64 `mapstructure:"temporal_window_hours"`
	MinSharedKeywords       int     `mapstructure:"min_shared_keywords"`
	SpatialMaxDistanceKm    float64 `mapstructure:"spatial_max_distance_km"`
	ThematicMinEvents       int     `mapstructure:"thematic_min_events"`
	CascadeMinGapHours      float64 `mapstructure:"cascade_min_gap_hours"`
	CascadeMaxGapHours      float64 `mapstructure:"cascade_max_gap_hours"`
	PatternMinEvents        int     `mapstructure:"pattern_min_events"`
	PatternTolerance        float64 `mapstructure:"pattern_tolerance"`
	PatternMaxIntervalHours float64 `mapstructure:"pattern_max_interval_hours"`
	ClusterRadiusKm         float64 `mapstructure:"cluster_radius_km"`
	ClusterMinSize          int     `mapstructure:"cluster_min_size"`
	MaxSignals              int     `mapstructure:"max_signals"`
}

// DefaultConfig returns the standard analysis thresholds.
func DefaultConfig() Config {
	return Config{
		TemporalWindowHours:     72,
		MinSharedKeywords:       2,
		SpatialMaxDistanceKm:    500,
		ThematicMinEvents:       3,
		CascadeMinGapHours:      6,
		CascadeMaxGapHours:      48,
		PatternMinEvents:        3,
		PatternTolerance:        0.2,
		PatternMaxIntervalHours: 168,
		ClusterRadiusKm:         100,
		ClusterMinSize:          2,
		MaxSignals:              5,
	}
}

// Engine runs all analysis passes over a snapshot.
type Engine struct {
	cfg Config
}

// New creates an Engine with the given thresholds.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Analyze runs the six passes over the same snapshot and aggregates their
// results. Passes share no state and run concurrently; results are not
// deduplicated across passes, so an event pair may appear in more than one
// collection. Every pass but thematic and pattern is O(n²) in event count;
// callers should pre-filter large snapshots by time window or region.
func (e *Engine) Analyze(ctx context.Context, events []models.Event) *models.Report {
	report := &models.Report{
		GeneratedAt: time.Now().UTC(),
		EventCount:  len(events),
	}

	var wg sync.WaitGroup
	wg.Add(6)
	go func() {
		defer wg.Done()
		report.Temporal = e.correlateTemporal(events)
	}()
	go func() {
		defer wg.Done()
		report.Spatial = e.correlateSpatial(events)
	}()
	go func() {
		defer wg.Done()
		report.Thematic = e.correlateThematic(events)
	}()
	go func() {
		defer wg.Done()
		report.Cascades = e.detectCascades(events)
	}()
	go func() {
		defer wg.Done()
		report.Patterns = e.detectPatterns(events)
	}()
	go func() {
		defer wg.Done()
		report.Clusters = e.buildClusters(events)
	}()
	wg.Wait()

	return report
}
