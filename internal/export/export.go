// Package export renders stories, signals, and analysis reports into
// interchange formats for download endpoints and the CLI.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// StoriesJSON renders stories as indented JSON.
func StoriesJSON(stories []models.Event) ([]byte, error) {
	return json.MarshalIndent(stories, "", "  ")
}

// SignalsJSON renders signals as indented JSON.
func SignalsJSON(signals []models.Signal) ([]byte, error) {
	return json.MarshalIndent(signals, "", "  ")
}

// StoriesCSV renders stories as CSV with a header row. Missing coordinates
// are emitted as empty cells.
func StoriesCSV(stories []models.Event) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "title", "timestamp", "latitude", "longitude", "region", "category", "source", "keywords"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, story := range stories {
		var lat, lon string
		if story.Latitude != nil {
			lat = strconv.FormatFloat(*story.Latitude, 'f', -1, 64)
		}
		if story.Longitude != nil {
			lon = strconv.FormatFloat(*story.Longitude, 'f', -1, 64)
		}
		record := []string{
			story.ID,
			story.Title,
			story.Timestamp.UTC().Format(time.RFC3339),
			lat,
			lon,
			story.Region,
			story.Category,
			story.Source,
			strings.Join(story.Keywords, ";"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// SignalsCSV renders signals as CSV with a header row.
func SignalsCSV(signals []models.Signal) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "type", "severity", "score", "description", "event_ids", "generated_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, sig := range signals {
		record := []string{
			sig.ID,
			sig.Type,
			sig.Severity,
			strconv.Itoa(sig.Score),
			sig.Description,
			strings.Join(sig.EventIDs, ";"),
			sig.GeneratedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportMarkdown renders a full analysis report as a Markdown document.
func ReportMarkdown(report *models.Report) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Correlation Report\n\n")
	fmt.Fprintf(&b, "Generated: %s  \n", report.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Events analyzed: %d\n\n", report.EventCount)

	writeResultSection(&b, "Temporal Correlations", report.Temporal)
	writeResultSection(&b, "Spatial Correlations", report.Spatial)
	writeResultSection(&b, "Thematic Correlations", report.Thematic)
	writeResultSection(&b, "Cascade Chains", report.Cascades)

	fmt.Fprintf(&b, "## Recurring Patterns\n\n")
	if len(report.Patterns) == 0 {
		fmt.Fprintf(&b, "_none_\n\n")
	} else {
		fmt.Fprintf(&b, "| Signature | Frequency (h) | Confidence |\n")
		fmt.Fprintf(&b, "|---|---|---|\n")
		for _, p := range report.Patterns {
			fmt.Fprintf(&b, "| %s | %.1f | %d%% |\n", p.Signature, p.FrequencyHrs, p.Confidence)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Geographic Clusters\n\n")
	if len(report.Clusters) == 0 {
		fmt.Fprintf(&b, "_none_\n\n")
	} else {
		fmt.Fprintf(&b, "| Cluster | Center | Radius (km) | Events | Categories |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|\n")
		for _, c := range report.Clusters {
			fmt.Fprintf(&b, "| %s | %.4f, %.4f | %.1f | %d | %s |\n",
				c.ID, c.CenterLat, c.CenterLon, c.RadiusKm, c.EventCount,
				strings.Join(c.Categories, ", "))
		}
		fmt.Fprintf(&b, "\n")
	}

	return []byte(b.String())
}

func writeResultSection(b *strings.Builder, title string, results []models.CorrelationResult) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(results) == 0 {
		fmt.Fprintf(b, "_none_\n\n")
		return
	}
	fmt.Fprintf(b, "| Score | Significance | Description |\n")
	fmt.Fprintf(b, "|---|---|---|\n")
	for _, r := range results {
		fmt.Fprintf(b, "| %d | %s | %s |\n", r.Score, r.Significance, r.Description)
	}
	fmt.Fprintf(b, "\n")
}
