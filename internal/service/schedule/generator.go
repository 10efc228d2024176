package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/identity"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/picker"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/window"
)

const (
	DefaultHorizonDays = 7
	// DefaultMaxEvents is the platform's pending-notification ceiling.
	DefaultMaxEvents = 64
)

type Options struct {
	HorizonDays int
	MaxEvents   int
	Allocator   identity.Allocator
}

type Result struct {
	ReminderID   string
	Events       []domain.ScheduledEvent
	SkippedCount int
	Truncated    bool
}

// occurrenceDay is one calendar day of the horizon with the windows that
// may still produce events on it.
type occurrenceDay struct {
	offset  int
	date    time.Time
	isToday bool
	windows []domain.Window
}

// Generator builds the event list for one reminder. It is pure apart from
// the injected random source and the picker's clock.
type Generator struct {
	resolver *window.Resolver
	picker   *picker.Picker
	rng      domain.RandomSource
}

func NewGenerator(resolver *window.Resolver, picker *picker.Picker, rng domain.RandomSource) *Generator {
	return &Generator{
		resolver: resolver,
		picker:   picker,
		rng:      rng,
	}
}

// Generate never fails for per-occurrence problems: elapsed slots are
// counted in SkippedCount. It returns domain.ErrInvalidReminder before doing
// any work when the reminder cannot be scheduled.
func (g *Generator) Generate(ctx context.Context, reminder domain.Reminder, now time.Time, opts Options) (*Result, error) {
	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	opts = opts.withDefaults()

	result := &Result{
		ReminderID: reminder.ID,
		Events:     make([]domain.ScheduledEvent, 0),
	}

	var days []occurrenceDay
	switch reminder.Cadence {
	case domain.CadenceMultipleDaily, domain.CadenceDaily:
		days = g.horizonDays(reminder, now, opts.HorizonDays)
	case domain.CadenceWeekly:
		day, ok, err := g.weeklyOccurrence(reminder, now)
		if err != nil {
			return nil, err
		}
		if ok {
			days = []occurrenceDay{day}
		}
	case domain.CadenceMonthly:
		days = []occurrenceDay{g.monthlyOccurrence(reminder, now)}
	default:
		return nil, fmt.Errorf("%w: unknown cadence %q", domain.ErrInvalidReminder, reminder.Cadence)
	}

	for _, day := range days {
		if len(result.Events) >= opts.MaxEvents {
			result.Truncated = true
			slog.DebugContext(ctx, "event cap reached, truncating",
				slog.String("reminder_id", reminder.ID),
				slog.Int("max_events", opts.MaxEvents),
			)
			return result, nil
		}

		if reminder.Cadence != domain.CadenceMultipleDaily {
			event, ok, err := g.singleEvent(ctx, reminder, day, now, opts.Allocator)
			if err != nil {
				return nil, err
			}
			if !ok {
				result.SkippedCount++
				continue
			}
			result.Events = append(result.Events, event)
			continue
		}

		for _, w := range day.windows {
			if len(result.Events) >= opts.MaxEvents {
				result.Truncated = true
				slog.DebugContext(ctx, "event cap reached, truncating",
					slog.String("reminder_id", reminder.ID),
					slog.Int("max_events", opts.MaxEvents),
				)
				return result, nil
			}

			fireAt, err := g.picker.Pick(day.date, w, now, day.isToday, g.rng)
			if err != nil {
				if errors.Is(err, domain.ErrElapsed) {
					result.SkippedCount++
					slog.DebugContext(ctx, "skipping elapsed occurrence",
						slog.String("reminder_id", reminder.ID),
						slog.Int("day_offset", day.offset),
						slog.String("window", w.String()),
					)
					continue
				}
				return nil, err
			}

			result.Events = append(result.Events, newEvent(reminder, day, w, fireAt, opts.Allocator))
		}
	}

	return result, nil
}

// horizonDays enumerates the days for daily and multiple-daily cadences.
// When none of the configured windows is usable today the whole horizon
// shifts by one day rather than emitting an empty today.
func (g *Generator) horizonDays(reminder domain.Reminder, now time.Time, horizon int) []occurrenceDay {
	today := startOfDay(now)
	usableToday := g.resolver.UsableFor(now, reminder.Windows)

	first := 0
	if len(usableToday) == 0 {
		first = 1
	}

	days := make([]occurrenceDay, 0, horizon)
	for offset := first; offset < first+horizon; offset++ {
		day := occurrenceDay{
			offset:  offset,
			date:    today.AddDate(0, 0, offset),
			windows: reminder.Windows,
		}
		if offset == 0 {
			day.isToday = true
			day.windows = usableToday
		}
		days = append(days, day)
	}
	return days
}

// weeklyOccurrence finds the next matching weekday. Today counts only if it
// still has a usable configured window; otherwise the occurrence rolls to
// the same weekday next week.
func (g *Generator) weeklyOccurrence(reminder domain.Reminder, now time.Time) (occurrenceDay, bool, error) {
	today := startOfDay(now)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Count:     2,
		Byweekday: []rrule.Weekday{isoWeekday(reminder.Weekday)},
		Dtstart:   today,
	})
	if err != nil {
		return occurrenceDay{}, false, fmt.Errorf("%w: weekly rule for reminder %s: %v", domain.ErrInvalidReminder, reminder.ID, err)
	}

	for _, date := range rule.All() {
		offset := daysBetween(today, date)
		if offset == 0 {
			usable := g.resolver.UsableFor(now, reminder.Windows)
			if len(usable) == 0 {
				continue
			}
			return occurrenceDay{offset: 0, date: date, isToday: true, windows: usable}, true, nil
		}
		return occurrenceDay{offset: offset, date: date, windows: reminder.Windows}, true, nil
	}

	return occurrenceDay{}, false, nil
}

// monthlyOccurrence targets the same day one calendar month ahead, clamped
// to the last day of that month.
func (g *Generator) monthlyOccurrence(reminder domain.Reminder, now time.Time) occurrenceDay {
	today := startOfDay(now)
	target := addMonthsClamped(today, 1)

	return occurrenceDay{
		offset:  daysBetween(today, target),
		date:    target,
		windows: reminder.Windows,
	}
}

// singleEvent places the one event of an occurrence of a single-event cadence.
// A window drawn for today can pass the hour check and still be elapsed once
// the safety buffer is applied; it is dropped and another one is drawn. When
// no window of today is reachable, a weekly occurrence moves to the same
// weekday next week and any other cadence reports the day as skipped.
func (g *Generator) singleEvent(ctx context.Context, reminder domain.Reminder, day occurrenceDay, now time.Time, alloc identity.Allocator) (domain.ScheduledEvent, bool, error) {
	candidates := append([]domain.Window(nil), day.windows...)

	for len(candidates) > 0 {
		idx := g.chooseWindow(candidates)
		w := candidates[idx]

		fireAt, err := g.picker.Pick(day.date, w, now, day.isToday, g.rng)
		if err == nil {
			return newEvent(reminder, day, w, fireAt, alloc), true, nil
		}
		if !errors.Is(err, domain.ErrElapsed) {
			return domain.ScheduledEvent{}, false, err
		}

		slog.DebugContext(ctx, "window elapsed after safety buffer, redrawing",
			slog.String("reminder_id", reminder.ID),
			slog.Int("day_offset", day.offset),
			slog.String("window", w.String()),
		)
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}

	if reminder.Cadence == domain.CadenceWeekly && day.isToday {
		next := occurrenceDay{
			offset:  day.offset + 7,
			date:    day.date.AddDate(0, 0, 7),
			windows: reminder.Windows,
		}
		return g.singleEvent(ctx, reminder, next, now, alloc)
	}

	slog.DebugContext(ctx, "skipping elapsed occurrence",
		slog.String("reminder_id", reminder.ID),
		slog.Int("day_offset", day.offset),
	)
	return domain.ScheduledEvent{}, false, nil
}

func newEvent(reminder domain.Reminder, day occurrenceDay, w domain.Window, fireAt time.Time, alloc identity.Allocator) domain.ScheduledEvent {
	dayOffset := day.offset + 1
	return domain.ScheduledEvent{
		ID:              alloc.Allocate(reminder.ID, dayOffset, w),
		OwnerReminderID: reminder.ID,
		Title:           reminder.NotificationTitle(),
		Body:            reminder.NotificationBody(),
		FireAt:          fireAt,
		Window:          w,
		DayOffset:       dayOffset,
	}
}

// chooseWindow returns the index of a uniformly drawn candidate.
func (g *Generator) chooseWindow(candidates []domain.Window) int {
	if len(candidates) == 1 {
		return 0
	}
	return g.rng.IntN(len(candidates))
}

func (o Options) withDefaults() Options {
	if o.HorizonDays <= 0 {
		o.HorizonDays = DefaultHorizonDays
	}
	if o.MaxEvents <= 0 {
		o.MaxEvents = DefaultMaxEvents
	}
	if o.Allocator == nil {
		o.Allocator = identity.NewHashAllocator()
	}
	return o
}
