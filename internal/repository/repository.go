// Package repository stores the story snapshot served by the read API and
// the signals emitted by analysis runs. The correlation engine itself never
// persists anything; this layer exists for the HTTP collaborator.
package repository

import (
	"context"
	"errors"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository is the storage contract for stories and signals.
type Repository interface {
	// ReplaceStories swaps the full story snapshot atomically.
	ReplaceStories(ctx context.Context, stories []models.Event) error
	ListStories(ctx context.Context, filter models.StoryFilter) ([]models.Event, error)
	GetStory(ctx context.Context, id string) (*models.Event, error)

	SaveSignals(ctx context.Context, signals []models.Signal) error
	ListSignals(ctx context.Context, filter models.SignalFilter) ([]models.Signal, error)

	Close()
}
