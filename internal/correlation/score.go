package correlation

import (
	"math"
	"sort"
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// Significance thresholds for score-ranked results.
const (
	scoreHighThreshold   = 70
	scoreMediumThreshold = 50
)

// clampScore rounds to the nearest integer and clamps into [0,100].
func clampScore(v float64) int {
	s := int(math.Round(v))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// significanceForScore maps a score to a tier. The low branch is unreachable
// for thematic and cascade results under the default thresholds; that
// behavior is intentional and kept.
func significanceForScore(score int) string {
	switch {
	case score > scoreHighThreshold:
		return models.SignificanceHigh
	case score > scoreMediumThreshold:
		return models.SignificanceMedium
	default:
		return models.SignificanceLow
	}
}

// sharedKeywords returns the intersection of two keyword sets by exact
// string equality. Duplicate keywords within one event are meaningless and
// counted once.
func sharedKeywords(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	for _, kw := range a {
		seen[kw] = true
	}
	var shared []string
	emitted := make(map[string]bool)
	for _, kw := range b {
		if seen[kw] && !emitted[kw] {
			shared = append(shared, kw)
			emitted[kw] = true
		}
	}
	return shared
}

func hoursBetween(a, b time.Time) float64 {
	return math.Abs(a.Sub(b).Hours())
}

// sortByScore orders results descending by score. The sort is stable so
// equal-score results keep their deterministic generation order.
func sortByScore(results []models.CorrelationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
