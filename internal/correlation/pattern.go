package correlation

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// patternRecentTimestamps bounds how many occurrence timestamps a pattern
// carries.
const patternRecentTimestamps = 5

// detectPatterns finds recurring-interval sequences of similar events.
// Events are grouped by region plus their first two keywords
// (order-sensitive); a group yields a pattern only if its inter-event
// intervals are consistent and the mean interval is under one week.
func (e *Engine) detectPatterns(events []models.Event) []models.TemporalPattern {
	groups := make(map[string][]models.Event)
	for _, ev := range events {
		sig := patternSignature(ev)
		groups[sig] = append(groups[sig], ev)
	}

	signatures := make([]string, 0, len(groups))
	for sig := range groups {
		signatures = append(signatures, sig)
	}
	sort.Strings(signatures)

	var patterns []models.TemporalPattern
	for _, sig := range signatures {
		group := groups[sig]
		if len(group) < e.cfg.PatternMinEvents {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Timestamp.Before(group[j].Timestamp)
		})

		intervals := make([]float64, 0, len(group)-1)
		for i := 1; i < len(group); i++ {
			intervals = append(intervals, group[i].Timestamp.Sub(group[i-1].Timestamp).Hours())
		}

		var sum float64
		for _, iv := range intervals {
			sum += iv
		}
		mean := sum / float64(len(intervals))

		if mean >= e.cfg.PatternMaxIntervalHours {
			continue
		}
		if !consistentIntervals(intervals, mean, e.cfg.PatternTolerance) {
			continue
		}

		recent := make([]time.Time, 0, patternRecentTimestamps)
		start := len(group) - patternRecentTimestamps
		if start < 0 {
			start = 0
		}
		for _, ev := range group[start:] {
			recent = append(recent, ev.Timestamp)
		}

		patterns = append(patterns, models.TemporalPattern{
			Signature:    sig,
			FrequencyHrs: mean,
			Confidence:   clampScore(float64(len(group)) * 20),
			LastOccurred: recent,
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})
	return patterns
}

// patternSignature is region plus up to the first two keywords, order
// preserved.
func patternSignature(ev models.Event) string {
	parts := []string{ev.Region}
	for i, kw := range ev.Keywords {
		if i == 2 {
			break
		}
		parts = append(parts, kw)
	}
	return strings.Join(parts, "|")
}

// consistentIntervals requires every interval within tolerance of the mean
// and within tolerance of its predecessor. The successive check catches a
// single late occurrence that a mean-only check would absorb.
func consistentIntervals(intervals []float64, mean, tolerance float64) bool {
	for i, iv := range intervals {
		if math.Abs(iv-mean) > mean*tolerance {
			return false
		}
		if i > 0 {
			prev := intervals[i-1]
			if math.Abs(iv-prev) > prev*tolerance {
				return false
			}
		}
	}
	return true
}
