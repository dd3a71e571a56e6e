package repository

import (
	"context"
	"sync"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// MemoryRepository is the default in-process store. It holds the current
// story snapshot and an append-only signal log, newest first.
type MemoryRepository struct {
	mu      sync.RWMutex
	stories []models.Event
	signals []models.Signal
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) ReplaceStories(ctx context.Context, stories []models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stories = make([]models.Event, len(stories))
	copy(r.stories, stories)
	return nil
}

func (r *MemoryRepository) ListStories(ctx context.Context, filter models.StoryFilter) ([]models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Event
	for _, s := range r.stories {
		if filter.Region != "" && s.Region != filter.Region {
			continue
		}
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		out = append(out, s)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetStory(ctx context.Context, id string) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.stories {
		if s.ID == id {
			story := s
			return &story, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) SaveSignals(ctx context.Context, signals []models.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Newest first so listings surface the latest run without sorting.
	r.signals = append(append([]models.Signal{}, signals...), r.signals...)
	return nil
}

func (r *MemoryRepository) ListSignals(ctx context.Context, filter models.SignalFilter) ([]models.Signal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Signal
	for _, s := range r.signals {
		if filter.Severity != "" && s.Severity != filter.Severity {
			continue
		}
		if filter.Type != "" && s.Type != filter.Type {
			continue
		}
		out = append(out, s)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepository) Close() {}
