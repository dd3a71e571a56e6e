package models

import "time"

// Alert severities. The projector deliberately emits medium only; high is
// reserved for operator escalation paths.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Signal is an alert-style record projected from a high-significance
// correlation result for the downstream notification layer.
type Signal struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Score       int       `json:"score"`
	Description string    `json:"description"`
	EventIDs    []string  `json:"event_ids"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SignalFilter narrows signal listings.
type SignalFilter struct {
	Severity string
	Type     string
	Limit    int
}
