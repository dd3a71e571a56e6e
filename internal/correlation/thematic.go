package correlation

import (
	"fmt"
	"sort"
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// thematicHighCount is the event count at which a theme becomes high
// significance. Because the emission threshold is already 3, thematic
// results are never low; kept as-is.
const thematicHighCount = 5

// correlateThematic finds keywords that connect three or more distinct
// events. One result is emitted per qualifying keyword, carrying all
// referencing event IDs.
func (e *Engine) correlateThematic(events []models.Event) []models.CorrelationResult {
	byKeyword := make(map[string][]string)
	for _, ev := range events {
		seen := make(map[string]bool, len(ev.Keywords))
		for _, kw := range ev.Keywords {
			if seen[kw] {
				continue
			}
			seen[kw] = true
			byKeyword[kw] = append(byKeyword[kw], ev.ID)
		}
	}

	// Sorted keys keep output deterministic across runs.
	keywords := make([]string, 0, len(byKeyword))
	for kw := range byKeyword {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	var results []models.CorrelationResult
	now := time.Now().UTC()
	for _, kw := range keywords {
		ids := byKeyword[kw]
		if len(ids) < e.cfg.ThematicMinEvents {
			continue
		}

		score := clampScore(float64(len(ids)) * 15)
		significance := models.SignificanceMedium
		if len(ids) >= thematicHighCount {
			significance = models.SignificanceHigh
		}

		results = append(results, models.CorrelationResult{
			ID:           fmt.Sprintf("theme_%s", kw),
			Type:         models.TypeThematic,
			Score:        score,
			EventIDs:     ids,
			Description:  fmt.Sprintf("keyword %q connects %d events", kw, len(ids)),
			Significance: significance,
			CreatedAt:    now,
		})
	}

	sortByScore(results)
	return results
}
