// Package scheduler triggers periodic analysis runs. Each run is stateless
// and independent; a failed run is logged and the next tick proceeds.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/crosswatch-systems/crosswatch/pkg/logging"
)

// Runner is the unit of work the scheduler invokes on every tick.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error { return f(ctx) }

// Scheduler invokes a Runner at a fixed interval.
type Scheduler struct {
	mu       sync.Mutex
	runner   Runner
	interval time.Duration
	logger   *logging.Logger
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a scheduler. Interval defaults to 5 minutes when zero.
func New(runner Runner, interval time.Duration, logger *logging.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the run loop. The first run happens after one full interval.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "scheduler starting", "interval", s.interval)

	s.wg.Add(1)
	go s.loop(ctx)
	return nil
}

// Stop halts the loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			if err := s.runner.Run(ctx); err != nil {
				s.logger.ErrorContext(ctx, "scheduled run failed", "error", err)
			}
		}
	}
}
