// Package schedule turns collection streams into registered reminders and
// keeps the notification queue bounded and fresh.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/greenloop/kerbside/internal/model"
	"github.com/greenloop/kerbside/internal/recurrence"
)

// Notifier is the external notification-delivery collaborator. Register must
// be idempotent on the identifier: registering the same identifier twice
// replaces rather than duplicates.
type Notifier interface {
	Register(ctx context.Context, entry model.ReminderEntry) error
	CancelPrefix(ctx context.Context, prefix string) error
	Remove(ctx context.Context, identifiers []string) error
	ListPending(ctx context.Context) ([]model.ReminderEntry, error)
}

// Scheduling horizon constants.
const (
	horizonMonths = 12
	// renewalWindowMonths and renewalMinimum drive NeedsRenewal: with fewer
	// than renewalMinimum reminders left beyond the window, a full pass
	// should be re-run soon.
	renewalWindowMonths = 6
	renewalMinimum      = 10
)

// Outcome summarizes a scheduling pass for the settings surface.
type Outcome struct {
	Scheduled int
	Failed    int
	Skipped   int
}

// Scheduler owns the replace-and-prune protocol against the notification
// queue. Scheduling passes are serialized; interleaved passes could leave the
// queue partially cancelled and partially registered.
type Scheduler struct {
	notifier Notifier
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewScheduler creates a scheduler around a notification collaborator.
func NewScheduler(notifier Notifier, logger *slog.Logger) *Scheduler {
	return &Scheduler{notifier: notifier, logger: logger}
}

// ScheduleReminders replaces the full reminder schedule: it cancels every
// reminder in the namespace, prunes expired entries queue-wide, then
// registers one reminder per occurrence over the next 12 months. A reminder
// fires the day before its collection at the given wall-clock time in loc,
// the user's zone (nil means the system zone); occurrences whose reminder
// moment is not strictly in the future are skipped.
//
// Registration is best-effort: an entry the collaborator rejects is logged
// and counted, and the rest of the batch continues.
func (s *Scheduler) ScheduleReminders(ctx context.Context, streams []model.CollectionStream, at model.TimeOfDay, loc *time.Location, address string, asOf time.Time) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.notifier.CancelPrefix(ctx, model.ReminderNamespace); err != nil {
		return Outcome{}, fmt.Errorf("failed to cancel existing reminders: %w", err)
	}
	if _, err := s.pruneExpired(ctx, asOf); err != nil {
		return Outcome{}, fmt.Errorf("failed to prune expired reminders: %w", err)
	}

	horizon := asOf.AddDate(0, horizonMonths, 0)

	var outcome Outcome
	for _, stream := range streams {
		dates, err := recurrence.StreamOccurrences(stream, asOf, horizon)
		if err != nil {
			return outcome, fmt.Errorf("failed to compute occurrences for %s: %w", stream.Category, err)
		}

		for _, date := range dates {
			entry := model.NewReminderEntry(stream.Category, date, address, at, loc)
			if !entry.FireAt.After(asOf) {
				outcome.Skipped++
				continue
			}

			if err := s.notifier.Register(ctx, entry); err != nil {
				outcome.Failed++
				s.logger.Warn("failed to register reminder",
					"identifier", entry.Identifier,
					"fire_at", entry.FireAt,
					"error", err)
				continue
			}
			outcome.Scheduled++
		}
	}

	s.logger.Info("reminder schedule replaced",
		"address", address,
		"streams", len(streams),
		"scheduled", outcome.Scheduled,
		"failed", outcome.Failed,
		"skipped", outcome.Skipped)

	return outcome, nil
}

// PruneExpired removes every registered reminder, in or out of the
// namespace, whose expiry has passed. Safe to run concurrently with a
// scheduling pass; removing an already-absent entry is a no-op.
func (s *Scheduler) PruneExpired(ctx context.Context, asOf time.Time) (int, error) {
	return s.pruneExpired(ctx, asOf)
}

func (s *Scheduler) pruneExpired(ctx context.Context, asOf time.Time) (int, error) {
	pending, err := s.notifier.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending reminders: %w", err)
	}

	var expired []string
	for _, entry := range pending {
		if entry.Expired(asOf) {
			expired = append(expired, entry.Identifier)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	if err := s.notifier.Remove(ctx, expired); err != nil {
		return 0, fmt.Errorf("failed to remove expired reminders: %w", err)
	}

	s.logger.Debug("removed expired reminders", "count", len(expired))
	return len(expired), nil
}

// NeedsRenewal reports whether the schedule is running thin: fewer than 10
// namespace reminders remain beyond six months from asOf. The caller decides
// whether to re-run ScheduleReminders, since that requires re-fetching
// current collection data.
func (s *Scheduler) NeedsRenewal(ctx context.Context, asOf time.Time) (bool, int, error) {
	pending, err := s.notifier.ListPending(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("failed to list pending reminders: %w", err)
	}

	cutoff := asOf.AddDate(0, renewalWindowMonths, 0)
	remaining := 0
	for _, entry := range pending {
		if entry.InNamespace() && entry.FireAt.After(cutoff) {
			remaining++
		}
	}

	return remaining < renewalMinimum, remaining, nil
}

// PendingCount returns the number of namespace reminders currently queued.
func (s *Scheduler) PendingCount(ctx context.Context) (int, error) {
	pending, err := s.notifier.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending reminders: %w", err)
	}

	count := 0
	for _, entry := range pending {
		if entry.InNamespace() {
			count++
		}
	}
	return count, nil
}
