package correlation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

func highResult(id, typ string, score int) models.CorrelationResult {
	return models.CorrelationResult{
		ID:           id,
		Type:         typ,
		Score:        score,
		EventIDs:     []string{id + "_a", id + "_b"},
		Description:  "desc " + id,
		Significance: models.SignificanceHigh,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestProjectSignals(t *testing.T) {
	e := defaultEngine()

	t.Run("caps at five by position", func(t *testing.T) {
		report := &models.Report{
			Temporal: []models.CorrelationResult{
				highResult("t1", models.TypeTemporal, 90),
				highResult("t2", models.TypeTemporal, 80),
				highResult("t3", models.TypeTemporal, 75),
			},
			Spatial: []models.CorrelationResult{
				highResult("s1", models.TypeSpatial, 99),
				highResult("s2", models.TypeSpatial, 95),
			},
			Cascades: []models.CorrelationResult{
				highResult("c1", models.TypeCascade, 100),
			},
		}

		signals := e.ProjectSignals(report)
		require.Len(t, signals, 5)

		// Fixed temporal/spatial/cascade order, no re-sort by score: the
		// cascade with score 100 falls off the end.
		types := make([]string, 0, len(signals))
		for _, s := range signals {
			types = append(types, s.Type)
		}
		assert.Equal(t, []string{
			"correlation_temporal", "correlation_temporal", "correlation_temporal",
			"correlation_spatial", "correlation_spatial",
		}, types)
	})

	t.Run("only high significance qualifies", func(t *testing.T) {
		medium := highResult("t1", models.TypeTemporal, 60)
		medium.Significance = models.SignificanceMedium

		report := &models.Report{
			Temporal: []models.CorrelationResult{medium},
			Spatial:  []models.CorrelationResult{highResult("s1", models.TypeSpatial, 95)},
		}

		signals := e.ProjectSignals(report)
		require.Len(t, signals, 1)
		assert.Equal(t, "correlation_spatial", signals[0].Type)
	})

	t.Run("thematic results never alert", func(t *testing.T) {
		report := &models.Report{
			Thematic: []models.CorrelationResult{highResult("th1", models.TypeThematic, 100)},
			Patterns: []models.TemporalPattern{{Signature: "X|a|b", Confidence: 100}},
			Clusters: []models.GeographicCluster{{ID: "cluster_x", EventCount: 10}},
		}
		assert.Empty(t, e.ProjectSignals(report))
	})

	t.Run("severity always downgraded to medium", func(t *testing.T) {
		report := &models.Report{
			Cascades: []models.CorrelationResult{highResult("c1", models.TypeCascade, 100)},
		}
		signals := e.ProjectSignals(report)
		require.Len(t, signals, 1)

		s := signals[0]
		assert.Equal(t, models.SeverityMedium, s.Severity)
		assert.Equal(t, 100, s.Score)
		assert.Equal(t, "desc c1", s.Description)
		assert.Equal(t, []string{"c1_a", "c1_b"}, s.EventIDs)
		assert.True(t, strings.HasPrefix(s.Type, "correlation_"))
		assert.NotEmpty(t, s.ID)
		assert.False(t, s.GeneratedAt.IsZero())
	})

	t.Run("empty report yields no signals", func(t *testing.T) {
		assert.Empty(t, e.ProjectSignals(&models.Report{}))
	})
}
