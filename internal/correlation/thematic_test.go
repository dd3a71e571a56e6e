package correlation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

func TestCorrelateThematic(t *testing.T) {
	e := defaultEngine()

	t.Run("keyword in exactly three events", func(t *testing.T) {
		results := e.correlateThematic([]models.Event{
			kwEvent("a", testBase, "", "drought"),
			kwEvent("b", testBase.Add(time.Hour), "", "drought", "harvest"),
			kwEvent("c", testBase.Add(2*time.Hour), "", "drought"),
		})
		require.Len(t, results, 1)

		r := results[0]
		assert.Equal(t, "theme_drought", r.ID)
		assert.Equal(t, models.TypeThematic, r.Type)
		assert.Equal(t, 45, r.Score)
		assert.Equal(t, models.SignificanceMedium, r.Significance)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, r.EventIDs)
	})

	t.Run("five events is high significance", func(t *testing.T) {
		events := make([]models.Event, 0, 5)
		ids := []string{"a", "b", "c", "d", "e"}
		for i, id := range ids {
			events = append(events, kwEvent(id, testBase.Add(time.Duration(i)*time.Hour), "", "drought"))
		}

		results := e.correlateThematic(events)
		require.Len(t, results, 1)
		assert.Equal(t, 75, results[0].Score)
		assert.Equal(t, models.SignificanceHigh, results[0].Significance)
	})

	t.Run("two events is below threshold", func(t *testing.T) {
		results := e.correlateThematic([]models.Event{
			kwEvent("a", testBase, "", "drought"),
			kwEvent("b", testBase, "", "drought"),
		})
		assert.Empty(t, results)
	})

	t.Run("duplicate keyword within one event counts once", func(t *testing.T) {
		results := e.correlateThematic([]models.Event{
			kwEvent("a", testBase, "", "drought", "drought"),
			kwEvent("b", testBase, "", "drought"),
			kwEvent("c", testBase, "", "drought"),
		})
		require.Len(t, results, 1)
		assert.Len(t, results[0].EventIDs, 3)
	})

	t.Run("score clamps at 100", func(t *testing.T) {
		events := make([]models.Event, 0, 8)
		for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			events = append(events, kwEvent(id, testBase, "", "drought"))
		}
		results := e.correlateThematic(events)
		require.Len(t, results, 1)
		assert.Equal(t, 100, results[0].Score)
	})
}
