package correlation

import (
	"fmt"
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// Distance thresholds for spatial significance tiers, in kilometers.
const (
	spatialHighKm   = 100
	spatialMediumKm = 250
)

// correlateSpatial finds event pairs that carry coordinates and lie within
// the maximum great-circle distance of each other.
func (e *Engine) correlateSpatial(events []models.Event) []models.CorrelationResult {
	var results []models.CorrelationResult
	now := time.Now().UTC()

	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			a, b := events[i], events[j]
			if !a.HasCoordinates() || !b.HasCoordinates() {
				continue
			}

			dist := haversineKm(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
			if dist > e.cfg.SpatialMaxDistanceKm {
				continue
			}

			score := clampScore((1 - dist/e.cfg.SpatialMaxDistanceKm) * 100)
			results = append(results, models.CorrelationResult{
				ID:           fmt.Sprintf("spatial_%s_%s", a.ID, b.ID),
				Type:         models.TypeSpatial,
				Score:        score,
				EventIDs:     []string{a.ID, b.ID},
				Description:  fmt.Sprintf("%q and %q occurred %.1f km apart", a.Title, b.Title, dist),
				Significance: spatialSignificance(dist),
				CreatedAt:    now,
			})
		}
	}

	sortByScore(results)
	return results
}

// spatialSignificance tiers by distance rather than score.
func spatialSignificance(distKm float64) string {
	switch {
	case distKm < spatialHighKm:
		return models.SignificanceHigh
	case distKm < spatialMediumKm:
		return models.SignificanceMedium
	default:
		return models.SignificanceLow
	}
}
