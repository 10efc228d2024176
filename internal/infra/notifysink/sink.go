package notifysink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/taskqueue"
)

const maxOwnerInTaskName = 100

// Sink delivers scheduled events through the task queue and keeps an index
// from sink key to task name so events can be cancelled by owner prefix.
type Sink struct {
	queue taskqueue.TaskQueue
	index domain.ScheduledEventIndex
}

// NewSink accepts a nil queue; scheduling is then logged and skipped.
func NewSink(queue taskqueue.TaskQueue, index domain.ScheduledEventIndex) *Sink {
	return &Sink{
		queue: queue,
		index: index,
	}
}

func (s *Sink) Schedule(ctx context.Context, event domain.ScheduledEvent) error {
	if s.queue == nil {
		slog.WarnContext(ctx, "task queue not configured, skipping notification",
			slog.String("reminder_id", event.OwnerReminderID),
			slog.Int64("event_id", event.ID),
		)
		return nil
	}

	task := &taskqueue.NotificationTask{
		TaskID:     TaskName(event),
		ScheduleAt: event.FireAt,
		ReminderID: event.OwnerReminderID,
		EventID:    event.ID,
		Title:      event.Title,
		Body:       event.Body,
		Window:     event.Window.String(),
		FireAt:     event.FireAt,
	}

	resp, err := s.queue.RegisterNotification(ctx, task)
	if err != nil {
		return err
	}

	if err := s.index.Add(ctx, event.SinkKey(), resp.Name); err != nil {
		// An unindexed task could never be cancelled.
		if delErr := s.queue.DeleteTask(ctx, resp.Name); delErr != nil {
			slog.ErrorContext(ctx, "failed to roll back unindexed task",
				slog.String("task_name", resp.Name),
				slog.String("error", delErr.Error()),
			)
		}
		return fmt.Errorf("failed to index event %s: %w", event.SinkKey(), err)
	}

	slog.DebugContext(ctx, "notification scheduled",
		slog.String("reminder_id", event.OwnerReminderID),
		slog.Int64("event_id", event.ID),
		slog.String("task_name", resp.Name),
		slog.Time("fire_at", event.FireAt),
	)

	return nil
}

// CancelAll deletes every indexed task whose sink key starts with
// ownerPrefix. Entries are only dropped from the index once their task is
// gone, so a failed cancel can be retried by the next pass.
func (s *Sink) CancelAll(ctx context.Context, ownerPrefix string) error {
	entries, err := s.index.ListByPrefix(ctx, ownerPrefix)
	if err != nil {
		return fmt.Errorf("failed to list scheduled events: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	removed := make([]string, 0, len(entries))
	var errs []error

	for sinkKey, taskName := range entries {
		if s.queue != nil {
			if err := s.queue.DeleteTask(ctx, taskName); err != nil {
				errs = append(errs, fmt.Errorf("failed to delete task %s: %w", taskName, err))
				continue
			}
		}
		removed = append(removed, sinkKey)
	}

	if err := s.index.Remove(ctx, removed...); err != nil {
		errs = append(errs, fmt.Errorf("failed to remove index entries: %w", err))
	}

	slog.DebugContext(ctx, "notifications cancelled",
		slog.String("owner_prefix", ownerPrefix),
		slog.Int("cancelled_count", len(removed)),
		slog.Int("failed_count", len(entries)-len(removed)),
	)

	return errors.Join(errs...)
}

// TaskName builds a queue-safe task id. The random suffix is needed because
// task services refuse to reuse the name of a recently deleted task.
func TaskName(event domain.ScheduledEvent) string {
	owner := sanitize(event.OwnerReminderID)
	if len(owner) > maxOwnerInTaskName {
		owner = owner[:maxOwnerInTaskName]
	}
	return owner + "-" + strconv.FormatInt(event.ID, 10) + "-" + uuid.NewString()[:8]
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
