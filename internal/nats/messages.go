package nats

import (
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// SignalCreatedMessage announces one newly projected signal.
type SignalCreatedMessage struct {
	Signal    models.Signal `json:"signal"`
	Timestamp time.Time     `json:"timestamp"`
}

// AnalysisCompletedMessage summarizes a completed analysis run.
type AnalysisCompletedMessage struct {
	EventCount   int       `json:"event_count"`
	Correlations int       `json:"correlations"`
	Patterns     int       `json:"patterns"`
	Clusters     int       `json:"clusters"`
	Signals      int       `json:"signals"`
	DurationMs   int64     `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
}
