package schedule

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper runs the expiration prune on a timer so the queue stays bounded
// between full scheduling passes. The host should also call Kick when it
// resumes from background.
type Sweeper struct {
	scheduler *Scheduler
	logger    *slog.Logger
	kickCh    chan struct{}
	stopCh    chan struct{}
}

// NewSweeper starts a sweeper pruning at the given interval (hourly when
// zero).
func NewSweeper(scheduler *Scheduler, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}

	s := &Sweeper{
		scheduler: scheduler,
		logger:    logger,
		kickCh:    make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}

	go s.run(interval)

	return s
}

// Kick requests an immediate sweep outside the regular interval.
func (s *Sweeper) Kick() {
	select {
	case s.kickCh <- struct{}{}:
	default:
	}
}

func (s *Sweeper) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweep()
		case <-s.kickCh:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.scheduler.PruneExpired(ctx, time.Now())
	if err != nil {
		s.logger.Warn("expiration sweep failed", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Info("expiration sweep removed reminders", "count", removed)
	}
}

// Close stops the sweep goroutine.
func (s *Sweeper) Close() {
	close(s.stopCh)
}
