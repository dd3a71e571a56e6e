package correlation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// mixedSnapshot exercises every pass at once.
func mixedSnapshot() []models.Event {
	events := []models.Event{
		geoEvent("geo1", testBase, 40.0, -74.0),
		geoEvent("geo2", testBase.Add(2*time.Hour), 40.2, -74.1),
		geoEvent("geo3", testBase.Add(30*time.Hour), 40.3, -74.2),
		kwEvent("kw1", testBase, "delta", "flood", "levee"),
		kwEvent("kw2", testBase.Add(10*time.Hour), "delta", "flood", "levee"),
		kwEvent("kw3", testBase.Add(40*time.Hour), "delta", "flood", "aid"),
		kwEvent("p1", testBase, "ridge", "quake", "aftershock"),
		kwEvent("p2", testBase.Add(24*time.Hour), "ridge", "quake", "aftershock"),
		kwEvent("p3", testBase.Add(48*time.Hour), "ridge", "quake", "aftershock"),
	}
	return events
}

func TestEngineAnalyze(t *testing.T) {
	e := defaultEngine()
	report := e.Analyze(context.Background(), mixedSnapshot())

	assert.Equal(t, 9, report.EventCount)
	assert.NotEmpty(t, report.Temporal)
	assert.NotEmpty(t, report.Spatial)
	assert.NotEmpty(t, report.Thematic)
	assert.NotEmpty(t, report.Cascades)
	assert.NotEmpty(t, report.Patterns)
	assert.NotEmpty(t, report.Clusters)

	t.Run("collections sorted by ranking key", func(t *testing.T) {
		for _, group := range [][]models.CorrelationResult{
			report.Temporal, report.Spatial, report.Thematic, report.Cascades,
		} {
			for i := 1; i < len(group); i++ {
				assert.GreaterOrEqual(t, group[i-1].Score, group[i].Score)
			}
		}
		for i := 1; i < len(report.Clusters); i++ {
			assert.GreaterOrEqual(t, report.Clusters[i-1].EventCount, report.Clusters[i].EventCount)
		}
		for i := 1; i < len(report.Patterns); i++ {
			assert.GreaterOrEqual(t, report.Patterns[i-1].Confidence, report.Patterns[i].Confidence)
		}
	})

	t.Run("no cross-pass suppression", func(t *testing.T) {
		// geo1/geo2 qualify spatially; they carry no shared keywords so the
		// pair appears once, but the passes never consult each other.
		assert.NotEmpty(t, report.Spatial)
		for _, r := range report.Spatial {
			assert.Equal(t, models.TypeSpatial, r.Type)
		}
	})

	t.Run("scores within bounds", func(t *testing.T) {
		for _, group := range [][]models.CorrelationResult{
			report.Temporal, report.Spatial, report.Thematic, report.Cascades,
		} {
			for _, r := range group {
				assert.GreaterOrEqual(t, r.Score, 0)
				assert.LessOrEqual(t, r.Score, 100)
			}
		}
	})
}

func TestEngineAnalyze_Idempotent(t *testing.T) {
	e := defaultEngine()
	snapshot := mixedSnapshot()

	first := e.Analyze(context.Background(), snapshot)
	second := e.Analyze(context.Background(), snapshot)

	normalize(first)
	normalize(second)
	require.Equal(t, first, second)
}

func TestEngineAnalyze_EmptySnapshot(t *testing.T) {
	e := defaultEngine()
	report := e.Analyze(context.Background(), nil)

	assert.Zero(t, report.EventCount)
	assert.Empty(t, report.Temporal)
	assert.Empty(t, report.Clusters)
}

// normalize zeroes generation timestamps so reports compare structurally.
func normalize(r *models.Report) {
	r.GeneratedAt = time.Time{}
	for _, group := range [][]models.CorrelationResult{r.Temporal, r.Spatial, r.Thematic, r.Cascades} {
		for i := range group {
			group[i].CreatedAt = time.Time{}
		}
	}
}
