package correlation

import (
	"time"

	"github.com/google/uuid"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// ProjectSignals downselects a report into alert records for the
// notification layer. Only high-significance temporal, spatial, and cascade
// results qualify, concatenated in that fixed order and truncated to the
// first MaxSignals by position; the concatenation is not re-sorted by score.
// Thematic results, patterns, and clusters never alert. Severity is always
// medium: high-significance correlations are downgraded deliberately to
// avoid alert fatigue.
func (e *Engine) ProjectSignals(report *models.Report) []models.Signal {
	var picked []models.CorrelationResult
	for _, group := range [][]models.CorrelationResult{report.Temporal, report.Spatial, report.Cascades} {
		for _, r := range group {
			if r.Significance == models.SignificanceHigh {
				picked = append(picked, r)
			}
		}
	}
	if len(picked) > e.cfg.MaxSignals {
		picked = picked[:e.cfg.MaxSignals]
	}

	now := time.Now().UTC()
	signals := make([]models.Signal, 0, len(picked))
	for _, r := range picked {
		signals = append(signals, models.Signal{
			ID:          uuid.New().String(),
			Type:        "correlation_" + r.Type,
			Severity:    models.SeverityMedium,
			Score:       r.Score,
			Description: r.Description,
			EventIDs:    r.EventIDs,
			GeneratedAt: now,
		})
	}
	return signals
}
