// Package service orchestrates the correlation engine against the stored
// snapshot and fans results out to storage, webhooks, and the message bus.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/crosswatch-systems/crosswatch/internal/correlation"
	"github.com/crosswatch-systems/crosswatch/internal/metrics"
	"github.com/crosswatch-systems/crosswatch/internal/models"
	"github.com/crosswatch-systems/crosswatch/internal/nats"
	"github.com/crosswatch-systems/crosswatch/internal/repository"
	"github.com/crosswatch-systems/crosswatch/internal/webhook"
	"github.com/crosswatch-systems/crosswatch/pkg/logging"
)

// Events dispatched to webhooks and the message bus.
const (
	EventSignalCreated     = "signal.created"
	EventAnalysisCompleted = "analysis.completed"
)

// Service runs analysis and serves the stored stories and signals.
type Service struct {
	engine     *correlation.Engine
	repo       repository.Repository
	dispatcher *webhook.Dispatcher
	publisher  nats.Publisher
	logger     *logging.Logger
}

// New wires the service. dispatcher may be nil when no webhook registry is
// configured; publisher is never nil (use nats.NoOpPublisher).
func New(engine *correlation.Engine, repo repository.Repository, dispatcher *webhook.Dispatcher, publisher nats.Publisher, logger *logging.Logger) *Service {
	return &Service{
		engine:     engine,
		repo:       repo,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}
}

// ReplaceStories swaps the stored snapshot for a new one.
func (s *Service) ReplaceStories(ctx context.Context, stories []models.Event) error {
	for _, story := range stories {
		if story.ID == "" {
			return fmt.Errorf("story requires an id (title=%q)", story.Title)
		}
	}
	if err := s.repo.ReplaceStories(ctx, stories); err != nil {
		return fmt.Errorf("replace stories: %w", err)
	}
	s.logger.InfoContext(ctx, "story snapshot replaced", "count", len(stories))
	return nil
}

// ListStories returns stored stories matching the filter.
func (s *Service) ListStories(ctx context.Context, filter models.StoryFilter) ([]models.Event, error) {
	return s.repo.ListStories(ctx, filter)
}

// GetStory returns one story by ID.
func (s *Service) GetStory(ctx context.Context, id string) (*models.Event, error) {
	return s.repo.GetStory(ctx, id)
}

// ListSignals returns stored signals matching the filter.
func (s *Service) ListSignals(ctx context.Context, filter models.SignalFilter) ([]models.Signal, error) {
	return s.repo.ListSignals(ctx, filter)
}

// RunAnalysis loads the current snapshot, runs every analysis pass, projects
// and persists signals, then notifies webhook subscribers and the message
// bus. Notification failures are logged but do not fail the run.
func (s *Service) RunAnalysis(ctx context.Context) (*models.Report, []models.Signal, error) {
	start := time.Now()

	stories, err := s.repo.ListStories(ctx, models.StoryFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("load stories: %w", err)
	}

	report := s.engine.Analyze(ctx, stories)
	signals := s.engine.ProjectSignals(report)

	metrics.AnalysisRuns.Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	metrics.CorrelationsFound.WithLabelValues(models.TypeTemporal).Add(float64(len(report.Temporal)))
	metrics.CorrelationsFound.WithLabelValues(models.TypeSpatial).Add(float64(len(report.Spatial)))
	metrics.CorrelationsFound.WithLabelValues(models.TypeThematic).Add(float64(len(report.Thematic)))
	metrics.CorrelationsFound.WithLabelValues(models.TypeCascade).Add(float64(len(report.Cascades)))
	metrics.SignalsEmitted.Add(float64(len(signals)))

	if len(signals) > 0 {
		if err := s.repo.SaveSignals(ctx, signals); err != nil {
			return nil, nil, fmt.Errorf("save signals: %w", err)
		}
	}

	s.notify(ctx, report, signals, time.Since(start))

	s.logger.InfoContext(ctx, "analysis run complete",
		"events", report.EventCount,
		"temporal", len(report.Temporal),
		"spatial", len(report.Spatial),
		"thematic", len(report.Thematic),
		"cascades", len(report.Cascades),
		"patterns", len(report.Patterns),
		"clusters", len(report.Clusters),
		"signals", len(signals),
		"duration", time.Since(start))

	return report, signals, nil
}

func (s *Service) notify(ctx context.Context, report *models.Report, signals []models.Signal, elapsed time.Duration) {
	now := time.Now().UTC()

	for _, sig := range signals {
		if s.dispatcher != nil {
			s.dispatcher.Dispatch(ctx, EventSignalCreated, sig)
		}
		msg := nats.SignalCreatedMessage{Signal: sig, Timestamp: now}
		if err := s.publisher.PublishJSON(ctx, nats.SubjectSignalCreated, msg); err != nil {
			s.logger.WarnContext(ctx, "failed to publish signal message", "signal_id", sig.ID, "error", err)
		}
	}

	correlations := len(report.Temporal) + len(report.Spatial) + len(report.Thematic) + len(report.Cascades)
	summary := nats.AnalysisCompletedMessage{
		EventCount:   report.EventCount,
		Correlations: correlations,
		Patterns:     len(report.Patterns),
		Clusters:     len(report.Clusters),
		Signals:      len(signals),
		DurationMs:   elapsed.Milliseconds(),
		Timestamp:    now,
	}
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, EventAnalysisCompleted, summary)
	}
	if err := s.publisher.PublishJSON(ctx, nats.SubjectAnalysisCompleted, summary); err != nil {
		s.logger.WarnContext(ctx, "failed to publish analysis summary", "error", err)
	}
}
