package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

func ptr(v float64) *float64 { return &v }

func sampleEvents() []models.Event {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Event{
		{ID: "e1", Title: "port strike", Timestamp: ts,
			Latitude: ptr(48.8566), Longitude: ptr(2.3522),
			Region: "west", Category: "labor", Source: "wire",
			Keywords: []string{"strike", "port"}},
		{ID: "e2", Title: "rail delay", Timestamp: ts.Add(6 * time.Hour),
			Region: "west", Category: "transport", Source: "wire",
			Keywords: []string{"rail", "delay"}},
	}
}

func TestStoriesJSON(t *testing.T) {
	data, err := StoriesJSON(sampleEvents())
	require.NoError(t, err)

	var decoded []models.Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "e1", decoded[0].ID)
	require.NotNil(t, decoded[0].Latitude)
	assert.InDelta(t, 48.8566, *decoded[0].Latitude, 1e-9)
	assert.Nil(t, decoded[1].Latitude)
}

func TestStoriesCSV(t *testing.T) {
	data, err := StoriesCSV(sampleEvents())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "e1", records[1][0])
	assert.Equal(t, "48.8566", records[1][3])
	assert.Equal(t, "strike;port", records[1][8])

	// missing coordinates become empty cells
	assert.Equal(t, "", records[2][3])
	assert.Equal(t, "", records[2][4])
}

func TestSignalsCSV(t *testing.T) {
	signals := []models.Signal{
		{ID: "sig1", Type: "correlation_cascade", Severity: models.SeverityMedium,
			Score: 92, Description: "chain", EventIDs: []string{"e1", "e2"},
			GeneratedAt: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}

	data, err := SignalsCSV(signals)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "92", records[1][3])
	assert.Equal(t, "e1;e2", records[1][5])
	assert.Equal(t, "2025-06-02T00:00:00Z", records[1][6])
}

func TestSignalsJSON(t *testing.T) {
	data, err := SignalsJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestReportMarkdown(t *testing.T) {
	report := &models.Report{
		GeneratedAt: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		EventCount:  4,
		Temporal: []models.CorrelationResult{
			{Score: 87, Significance: models.SignificanceHigh, Description: "events within 24h"},
		},
		Patterns: []models.TemporalPattern{
			{Signature: "west|strike|port", FrequencyHrs: 24, Confidence: 60},
		},
		Clusters: []models.GeographicCluster{
			{ID: "cluster_e1", CenterLat: 48.8566, CenterLon: 2.3522,
				RadiusKm: 12.5, EventCount: 3, Categories: []string{"labor", "transport"}},
		},
	}

	md := string(ReportMarkdown(report))
	assert.Contains(t, md, "# Correlation Report")
	assert.Contains(t, md, "Events analyzed: 4")
	assert.Contains(t, md, "| 87 | high | events within 24h |")
	assert.Contains(t, md, "| west|strike|port | 24.0 | 60% |")
	assert.Contains(t, md, "cluster_e1")

	// empty sections render a placeholder instead of an empty table
	assert.Contains(t, md, "## Spatial Correlations\n\n_none_")
}
