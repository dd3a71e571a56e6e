package correlation

import (
	"fmt"
	"sort"
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// cascadeHighGapHours: a follow-on within this gap is high significance.
// The boundary is exclusive; a gap of exactly 12h is medium.
const cascadeHighGapHours = 12

// detectCascades finds ordered event pairs whose gap suggests a delayed
// causal chain: the earlier event plausibly created conditions for the
// later one. Pairs qualify on shared region or shared keywords.
func (e *Engine) detectCascades(events []models.Event) []models.CorrelationResult {
	ordered := make([]models.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	var results []models.CorrelationResult
	now := time.Now().UTC()

	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			earlier, later := ordered[i], ordered[j]

			gap := later.Timestamp.Sub(earlier.Timestamp).Hours()
			if gap <= e.cfg.CascadeMinGapHours || gap >= e.cfg.CascadeMaxGapHours {
				continue
			}

			sameRegion := earlier.Region != "" && earlier.Region == later.Region
			shared := sharedKeywords(earlier.Keywords, later.Keywords)
			if !sameRegion && len(shared) < e.cfg.MinSharedKeywords {
				continue
			}

			bonus := float64(len(shared)) * 10
			if sameRegion {
				bonus = 20
			}

			score := clampScore((1-gap/e.cfg.CascadeMaxGapHours)*100 + bonus)
			significance := models.SignificanceMedium
			if gap < cascadeHighGapHours {
				significance = models.SignificanceHigh
			}

			results = append(results, models.CorrelationResult{
				ID:           fmt.Sprintf("cascade_%s_%s", earlier.ID, later.ID),
				Type:         models.TypeCascade,
				Score:        score,
				EventIDs:     []string{earlier.ID, later.ID},
				Description:  fmt.Sprintf("%q may have triggered conditions for %q %.1f hours later", earlier.Title, later.Title, gap),
				Significance: significance,
				CreatedAt:    now,
			})
		}
	}

	sortByScore(results)
	return results
}
