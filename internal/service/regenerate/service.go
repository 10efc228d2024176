package regenerate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/clock"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/identity"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/picker"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/refresh"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/schedule"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/window"
)

const defaultDispatchConcurrency = 4

// Service runs full cancel-and-reschedule passes over every enabled
// reminder. Passes are serialized; callers may trigger them concurrently.
type Service struct {
	source           domain.ReminderSource
	sink             domain.NotificationSink
	stateRepo        domain.RefreshStateRepository
	resolver         *window.Resolver
	clock            domain.Clock
	rng              domain.RandomSource
	policy           *refresh.Policy
	allocatorFactory identity.Factory
	recorder         domain.RegenerationRecorder
	regenMetrics     *metrics.RegenerationMetrics
	opts             Options

	generator *schedule.Generator

	mu sync.Mutex
}

func NewService(
	source domain.ReminderSource,
	sink domain.NotificationSink,
	stateRepo domain.RefreshStateRepository,
	resolver *window.Resolver,
	clk domain.Clock,
	rng domain.RandomSource,
	policy *refresh.Policy,
	allocatorFactory identity.Factory,
	recorder domain.RegenerationRecorder,
	regenMetrics *metrics.RegenerationMetrics,
	opts Options,
) *Service {
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = schedule.DefaultHorizonDays
	}
	if opts.MaxEvents <= 0 {
		opts.MaxEvents = schedule.DefaultMaxEvents
	}
	if opts.DispatchConcurrency <= 0 {
		opts.DispatchConcurrency = defaultDispatchConcurrency
	}
	if allocatorFactory == nil {
		allocatorFactory = identity.NewFactory(identity.SchemeHash)
	}

	s := &Service{
		source:           source,
		sink:             sink,
		stateRepo:        stateRepo,
		resolver:         resolver,
		clock:            clk,
		rng:              rng,
		policy:           policy,
		allocatorFactory: allocatorFactory,
		recorder:         recorder,
		regenMetrics:     regenMetrics,
		opts:             opts,
	}
	s.generator = s.newGenerator(clk)

	return s
}

func (s *Service) newGenerator(clk domain.Clock) *schedule.Generator {
	return schedule.NewGenerator(
		s.resolver,
		picker.NewPicker(s.resolver, clk, s.opts.SafetyBuffer),
		s.rng,
	)
}

// RegenerateAll cancels and reschedules every enabled reminder regardless of
// the refresh policy.
func (s *Service) RegenerateAll(ctx context.Context, trigger Trigger) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.regenerate(ctx, trigger)
}

// RefreshIfDue runs a pass only when the persisted refresh state is missing
// or stale. The boolean reports whether a pass ran.
func (s *Service) RefreshIfDue(ctx context.Context, trigger Trigger) (*Response, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadState(ctx)
	now := s.clock.Now()

	if !s.policy.IsRefreshDue(state, now) {
		slog.DebugContext(ctx, "refresh not due",
			slog.String("trigger", trigger.String()),
			slog.Time("last_refresh_at", state.LastRefreshAt),
			slog.Duration("stale_after", s.policy.StaleAfter()),
		)
		return nil, false, nil
	}

	resp, err := s.regenerate(ctx, trigger)
	return resp, true, err
}

// Preview generates the schedule a pass would build for one reminder at the
// given instant without touching the sink. A zero at means now.
func (s *Service) Preview(ctx context.Context, reminderID string, at time.Time) (*Preview, error) {
	if at.IsZero() {
		at = s.clock.Now()
	}

	reminders, err := s.source.ListReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	var (
		target domain.Reminder
		found  bool
	)
	for _, r := range reminders {
		if r.ID == reminderID {
			target = r
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrReminderNotFound, reminderID)
	}

	allocator, err := s.allocatorFactory(reminderIDs(domain.EnabledReminders(reminders)))
	if err != nil {
		return nil, fmt.Errorf("failed to build identity allocator: %w", err)
	}

	generator := s.newGenerator(clock.NewFixedClock(at))
	result, err := generator.Generate(ctx, target, at, schedule.Options{
		HorizonDays: s.opts.HorizonDays,
		MaxEvents:   s.opts.MaxEvents,
		Allocator:   allocator,
	})
	if err != nil {
		return nil, err
	}

	return &Preview{
		Reminder:     target,
		GeneratedAt:  at,
		Events:       result.Events,
		SkippedCount: result.SkippedCount,
		Truncated:    result.Truncated,
	}, nil
}

// CancelReminder withdraws every pending notification of one reminder.
func (s *Service) CancelReminder(ctx context.Context, reminderID string) error {
	if reminderID == "" {
		return fmt.Errorf("%w: empty reminder id", domain.ErrInvalidReminder)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sink.CancelAll(ctx, domain.OwnerPrefix(reminderID)); err != nil {
		return fmt.Errorf("failed to cancel reminder %s: %w", reminderID, err)
	}

	slog.InfoContext(ctx, "reminder notifications cancelled",
		slog.String("reminder_id", reminderID),
	)

	return nil
}

func (s *Service) regenerate(ctx context.Context, trigger Trigger) (*Response, error) {
	runID := uuid.NewString()

	ctx, span := tracing.StartRegenerationSpan(ctx, trigger.String(), runID)
	defer span.End()

	startedAt := time.Now()
	now := s.clock.Now()

	resp := &Response{
		RunID:       runID,
		Trigger:     trigger,
		GeneratedAt: now,
		Results:     make([]ResultItem, 0),
	}

	reminders, err := s.source.ListReminders(ctx)
	if err != nil {
		err = fmt.Errorf("failed to list reminders: %w", err)
		slog.ErrorContext(ctx, "regeneration aborted",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		s.finish(ctx, span, resp, startedAt, err)
		return nil, err
	}

	enabled := domain.EnabledReminders(reminders)
	resp.ReminderCount = len(enabled)

	slog.InfoContext(ctx, "regeneration started",
		slog.String("event", "regeneration.start"),
		slog.String("run_id", runID),
		slog.String("trigger", trigger.String()),
		slog.Int("reminder_count", len(reminders)),
		slog.Int("enabled_count", len(enabled)),
	)

	if len(enabled) == 0 {
		if err := s.sink.CancelAll(ctx, domain.AllOwnersPrefix); err != nil {
			err = fmt.Errorf("failed to cancel all notifications: %w", err)
			s.finish(ctx, span, resp, startedAt, err)
			return resp, err
		}
		s.saveState(ctx, now, nil)
		s.finish(ctx, span, resp, startedAt, nil)
		return resp, nil
	}

	ids := reminderIDs(enabled)

	var passErrs []error

	stale, err := s.cancelStaleOwners(ctx, s.loadState(ctx), ids)
	resp.StaleCancelledCount = stale
	if err != nil {
		passErrs = append(passErrs, err)
	}

	allocator, err := s.allocatorFactory(ids)
	if err != nil {
		err = fmt.Errorf("failed to build identity allocator: %w", err)
		s.finish(ctx, span, resp, startedAt, err)
		return resp, err
	}

	budget := s.opts.MaxEvents
	issued := make(map[int64]string)
	processed := make(map[string]bool, len(enabled))

	for _, reminder := range enabled {
		if processed[reminder.ID] {
			item := ResultItem{
				ReminderID: reminder.ID,
				Cadence:    reminder.Cadence,
				Rejected:   true,
				Events:     make([]EventItem, 0),
				Error:      fmt.Sprintf("%v: duplicate reminder id", domain.ErrInvalidReminder),
			}
			slog.WarnContext(ctx, "duplicate reminder id in source",
				slog.String("reminder_id", reminder.ID),
			)
			resp.add(item)
			continue
		}
		processed[reminder.ID] = true

		item, err := s.regenerateReminder(ctx, reminder, now, allocator, &budget, issued)
		if err != nil {
			passErrs = append(passErrs, err)
		}
		s.recordReminder(ctx, reminder, item)
		resp.add(item)
	}

	passErr := errors.Join(passErrs...)
	if passErr == nil {
		s.saveState(ctx, now, ids)
	} else {
		slog.WarnContext(ctx, "regeneration incomplete, refresh state not saved",
			slog.String("run_id", runID),
			slog.Int("failed_count", resp.FailedCount),
			slog.String("error", passErr.Error()),
		)
	}

	s.finish(ctx, span, resp, startedAt, passErr)

	return resp, passErr
}

func (s *Service) regenerateReminder(
	ctx context.Context,
	reminder domain.Reminder,
	now time.Time,
	allocator identity.Allocator,
	budget *int,
	issued map[int64]string,
) (ResultItem, error) {
	item := ResultItem{
		ReminderID: reminder.ID,
		Cadence:    reminder.Cadence,
		Events:     make([]EventItem, 0),
	}

	// Previous notifications go even when the reminder is now invalid.
	if err := s.sink.CancelAll(ctx, domain.OwnerPrefix(reminder.ID)); err != nil {
		slog.ErrorContext(ctx, "failed to cancel reminder notifications",
			slog.String("reminder_id", reminder.ID),
			slog.String("error", err.Error()),
		)
		item.Error = err.Error()
		return item, fmt.Errorf("failed to cancel reminder %s: %w", reminder.ID, err)
	}

	if err := reminder.Validate(); err != nil {
		slog.WarnContext(ctx, "rejecting reminder",
			slog.String("reminder_id", reminder.ID),
			slog.String("error", err.Error()),
		)
		item.Rejected = true
		item.Error = err.Error()
		return item, nil
	}

	if *budget <= 0 {
		slog.WarnContext(ctx, "event budget exhausted, reminder not scheduled",
			slog.String("reminder_id", reminder.ID),
			slog.Int("max_events", s.opts.MaxEvents),
		)
		item.Truncated = true
		return item, nil
	}

	genCtx, genSpan := tracing.StartGenerateSpan(ctx, reminder.ID, reminder.Cadence.String())
	genStarted := time.Now()
	result, err := s.generator.Generate(genCtx, reminder, now, schedule.Options{
		HorizonDays: s.opts.HorizonDays,
		MaxEvents:   *budget,
		Allocator:   allocator,
	})
	if s.regenMetrics != nil {
		s.regenMetrics.RecordGenerateDuration(ctx, reminder.Cadence.String(), time.Since(genStarted))
	}
	if err != nil {
		tracing.RecordGenerateResult(genSpan, 0, 0, false, err)
		genSpan.End()
		item.Error = err.Error()
		if errors.Is(err, domain.ErrInvalidReminder) {
			item.Rejected = true
			return item, nil
		}
		return item, fmt.Errorf("failed to generate reminder %s: %w", reminder.ID, err)
	}
	tracing.RecordGenerateResult(genSpan, len(result.Events), result.SkippedCount, result.Truncated, nil)
	genSpan.End()

	events, duplicates := dropDuplicates(ctx, result.Events, issued)
	*budget -= len(events)

	item.SkippedCount = result.SkippedCount + duplicates
	item.Truncated = result.Truncated

	sinkErrs := s.dispatch(ctx, reminder.ID, events)

	var failures []error
	for i, event := range events {
		ev := EventItem{
			ID:        event.ID,
			FireAt:    event.FireAt,
			Window:    event.Window,
			DayOffset: event.DayOffset,
		}
		if sinkErrs[i] != nil {
			ev.Error = sinkErrs[i].Error()
			item.FailedCount++
			failures = append(failures, sinkErrs[i])
		} else {
			item.ScheduledCount++
		}
		item.Events = append(item.Events, ev)
	}

	slog.DebugContext(ctx, "reminder regenerated",
		slog.String("reminder_id", reminder.ID),
		slog.String("cadence", reminder.Cadence.String()),
		slog.Int("scheduled_count", item.ScheduledCount),
		slog.Int("failed_count", item.FailedCount),
		slog.Int("skipped_count", item.SkippedCount),
		slog.Bool("truncated", item.Truncated),
	)

	return item, errors.Join(failures...)
}

// dispatch hands events to the sink through a bounded worker pool. The
// returned slice is parallel to events; a failed call never stops the rest.
func (s *Service) dispatch(ctx context.Context, reminderID string, events []domain.ScheduledEvent) []error {
	errs := make([]error, len(events))
	if len(events) == 0 {
		return errs
	}

	ctx, span := tracing.StartDispatchSpan(ctx, reminderID, len(events))
	defer span.End()

	var g errgroup.Group
	g.SetLimit(s.opts.DispatchConcurrency)

	for i, event := range events {
		g.Go(func() error {
			if err := s.sink.Schedule(ctx, event); err != nil {
				slog.ErrorContext(ctx, "failed to schedule notification",
					slog.String("reminder_id", event.OwnerReminderID),
					slog.Int64("event_id", event.ID),
					slog.Time("fire_at", event.FireAt),
					slog.String("error", err.Error()),
				)
				errs[i] = &domain.SinkError{
					EventID:         event.ID,
					OwnerReminderID: event.OwnerReminderID,
					Err:             err,
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	tracing.RecordError(span, errors.Join(errs...))

	return errs
}

// cancelStaleOwners cancels reminders present in the previous snapshot that
// are no longer enabled.
func (s *Service) cancelStaleOwners(ctx context.Context, previous *domain.RefreshState, current []string) (int, error) {
	if previous == nil {
		return 0, nil
	}

	keep := make(map[string]bool, len(current))
	for _, id := range current {
		keep[id] = true
	}

	cancelled := 0
	var errs []error
	for _, id := range previous.ReminderIDs {
		if keep[id] {
			continue
		}
		if err := s.sink.CancelAll(ctx, domain.OwnerPrefix(id)); err != nil {
			slog.ErrorContext(ctx, "failed to cancel stale reminder",
				slog.String("reminder_id", id),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("failed to cancel stale reminder %s: %w", id, err))
			continue
		}
		cancelled++
		slog.InfoContext(ctx, "stale reminder cancelled",
			slog.String("reminder_id", id),
		)
	}

	return cancelled, errors.Join(errs...)
}

func (s *Service) loadState(ctx context.Context) *domain.RefreshState {
	if s.stateRepo == nil {
		return nil
	}

	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrRefreshStateNotFound) {
			slog.WarnContext(ctx, "failed to load refresh state, treating as never refreshed",
				slog.String("error", err.Error()),
			)
		}
		return nil
	}

	return state
}

func (s *Service) saveState(ctx context.Context, now time.Time, ids []string) {
	if s.stateRepo == nil {
		return
	}

	if err := s.stateRepo.Save(ctx, domain.NewRefreshState(now, ids)); err != nil {
		slog.WarnContext(ctx, "failed to save refresh state",
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) recordReminder(ctx context.Context, reminder domain.Reminder, item ResultItem) {
	if s.regenMetrics == nil {
		return
	}

	outcome := "scheduled"
	switch {
	case item.Rejected:
		outcome = "rejected"
	case item.Error != "" && item.FailedCount == 0:
		outcome = "cancel_failed"
	case item.FailedCount > 0:
		outcome = "partial"
	case item.Truncated:
		outcome = "truncated"
	}

	s.regenMetrics.RecordReminder(ctx, reminder.Cadence.String(), outcome)
	s.regenMetrics.RecordEvents(ctx, "scheduled", item.ScheduledCount)
	s.regenMetrics.RecordEvents(ctx, "failed", item.FailedCount)
	s.regenMetrics.RecordEvents(ctx, "skipped", item.SkippedCount)
}

func (s *Service) finish(ctx context.Context, span trace.Span, resp *Response, startedAt time.Time, err error) {
	tracing.RecordRegenerationResult(span,
		resp.ReminderCount,
		resp.ScheduledCount,
		resp.FailedCount,
		resp.SkippedCount,
		resp.RejectedCount,
		err,
	)

	duration := time.Since(startedAt)

	outcome := "success"
	if err != nil {
		outcome = "failed"
	}
	if s.regenMetrics != nil {
		s.regenMetrics.RecordPass(ctx, resp.Trigger.String(), outcome, duration)
	}

	if s.recorder != nil {
		record := domain.RegenerationRecord{
			RunID:          resp.RunID,
			Trigger:        resp.Trigger.String(),
			StartedAt:      resp.GeneratedAt,
			ReminderCount:  resp.ReminderCount,
			ScheduledCount: resp.ScheduledCount,
			FailedCount:    resp.FailedCount,
			SkippedCount:   resp.SkippedCount,
			RejectedCount:  resp.RejectedCount,
			Truncated:      resp.Truncated,
		}
		if recErr := s.recorder.RecordRegeneration(ctx, record); recErr != nil {
			slog.WarnContext(ctx, "failed to record regeneration",
				slog.String("run_id", resp.RunID),
				slog.String("error", recErr.Error()),
			)
		} else if flushErr := s.recorder.Flush(ctx); flushErr != nil {
			slog.WarnContext(ctx, "failed to flush regeneration record",
				slog.String("run_id", resp.RunID),
				slog.String("error", flushErr.Error()),
			)
		}
	}

	slog.InfoContext(ctx, "regeneration finished",
		slog.String("event", "regeneration.finish"),
		slog.String("run_id", resp.RunID),
		slog.String("outcome", outcome),
		slog.Int("reminder_count", resp.ReminderCount),
		slog.Int("scheduled_count", resp.ScheduledCount),
		slog.Int("failed_count", resp.FailedCount),
		slog.Int("skipped_count", resp.SkippedCount),
		slog.Int("rejected_count", resp.RejectedCount),
		slog.Bool("truncated", resp.Truncated),
		slog.Duration("duration", duration),
	)
}

func reminderIDs(reminders []domain.Reminder) []string {
	ids := make([]string, 0, len(reminders))
	seen := make(map[string]bool, len(reminders))
	for _, r := range reminders {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		ids = append(ids, r.ID)
	}
	return ids
}

// dropDuplicates removes events whose id was already issued earlier in the
// pass, which happens when two reminder ids share a hash bucket.
func dropDuplicates(ctx context.Context, events []domain.ScheduledEvent, issued map[int64]string) ([]domain.ScheduledEvent, int) {
	kept := make([]domain.ScheduledEvent, 0, len(events))
	dropped := 0

	for _, event := range events {
		if owner, ok := issued[event.ID]; ok {
			slog.WarnContext(ctx, "event id collision, dropping event",
				slog.Int64("event_id", event.ID),
				slog.String("reminder_id", event.OwnerReminderID),
				slog.String("colliding_reminder_id", owner),
			)
			dropped++
			continue
		}
		issued[event.ID] = event.OwnerReminderID
		kept = append(kept, event)
	}

	return kept, dropped
}
