package correlation

import (
	"fmt"
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// correlateTemporal finds unordered event pairs that occurred within the
// correlation window and share enough keywords. O(n²) in event count; this
// is the dominant cost driver of a run.
func (e *Engine) correlateTemporal(events []models.Event) []models.CorrelationResult {
	var results []models.CorrelationResult
	now := time.Now().UTC()

	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			a, b := events[i], events[j]

			gap := hoursBetween(a.Timestamp, b.Timestamp)
			if gap > e.cfg.TemporalWindowHours {
				continue
			}

			shared := sharedKeywords(a.Keywords, b.Keywords)
			if len(shared) < e.cfg.MinSharedKeywords {
				continue
			}

			score := clampScore((1-gap/e.cfg.TemporalWindowHours)*100 + float64(len(shared))*10)
			results = append(results, models.CorrelationResult{
				ID:           fmt.Sprintf("temporal_%s_%s", a.ID, b.ID),
				Type:         models.TypeTemporal,
				Score:        score,
				EventIDs:     []string{a.ID, b.ID},
				Description:  fmt.Sprintf("%q and %q occurred within %.1f hours sharing %d keywords", a.Title, b.Title, gap, len(shared)),
				Significance: significanceForScore(score),
				CreatedAt:    now,
			})
		}
	}

	sortByScore(results)
	return results
}
