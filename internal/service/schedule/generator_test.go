package schedule

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/clock"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/random"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/picker"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/window"
)

var allWindows = []domain.Window{
	domain.WindowMorning,
	domain.WindowMidday,
	domain.WindowAfternoon,
	domain.WindowEvening,
}

func newTestGenerator(now time.Time, seed uint64) *Generator {
	resolver := window.NewResolver()
	return NewGenerator(
		resolver,
		picker.NewPicker(resolver, clock.NewFixedClock(now), time.Minute),
		random.NewSource(seed),
	)
}

// 2025-03-10 is a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestGenerator_Generate_MultipleDailyScenarios(t *testing.T) {
	now := mondayAt(12, 41)

	tests := []struct {
		name         string
		windows      []domain.Window
		wantCount    int
		wantFirstDay int
	}{
		{
			name:         "all windows with morning elapsed today",
			windows:      allWindows,
			wantCount:    27,
			wantFirstDay: 0,
		},
		{
			name:         "morning only shifts start to tomorrow",
			windows:      []domain.Window{domain.WindowMorning},
			wantCount:    7,
			wantFirstDay: 1,
		},
		{
			name:         "midday only still usable today",
			windows:      []domain.Window{domain.WindowMidday},
			wantCount:    7,
			wantFirstDay: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(now, 1)
			reminder := domain.Reminder{
				ID:      "r-multi",
				Cadence: domain.CadenceMultipleDaily,
				Windows: tt.windows,
				Enabled: true,
			}

			result, err := g.Generate(context.Background(), reminder, now, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result.Events) != tt.wantCount {
				t.Fatalf("len(Events) = %d, want %d", len(result.Events), tt.wantCount)
			}
			if result.Truncated {
				t.Error("Truncated = true, want false")
			}

			firstDay := daysBetween(now, result.Events[0].FireAt)
			if firstDay != tt.wantFirstDay {
				t.Errorf("first event on day %d, want %d", firstDay, tt.wantFirstDay)
			}
			lastDay := daysBetween(now, result.Events[len(result.Events)-1].FireAt)
			if want := tt.wantFirstDay + DefaultHorizonDays - 1; lastDay != want {
				t.Errorf("last event on day %d, want %d", lastDay, want)
			}
		})
	}
}

func TestGenerator_Generate_TodayExcludesElapsedWindows(t *testing.T) {
	now := mondayAt(12, 41)
	g := newTestGenerator(now, 3)

	reminder := domain.Reminder{
		ID:      "r-today",
		Cadence: domain.CadenceMultipleDaily,
		Windows: allWindows,
	}

	result, err := g.Generate(context.Background(), reminder, now, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var today []domain.Window
	for _, e := range result.Events {
		if daysBetween(now, e.FireAt) == 0 {
			today = append(today, e.Window)
		}
	}

	want := []domain.Window{domain.WindowMidday, domain.WindowAfternoon, domain.WindowEvening}
	if !reflect.DeepEqual(today, want) {
		t.Errorf("today's windows = %v, want %v", today, want)
	}
}

func TestGenerator_Generate_EventsAreFutureAndInsideWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 58, 30, 0, time.UTC)
	resolver := window.NewResolver()

	for seed := uint64(1); seed <= 20; seed++ {
		g := newTestGenerator(now, seed)
		reminder := domain.Reminder{
			ID:      "r-bounds",
			Cadence: domain.CadenceMultipleDaily,
			Windows: allWindows,
		}

		result, err := g.Generate(context.Background(), reminder, now, Options{})
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}

		for _, e := range result.Events {
			if !e.FireAt.After(now.Add(time.Minute)) {
				t.Errorf("seed %d: event %d fires at %v, not after now+buffer", seed, e.ID, e.FireAt)
			}
			start, end := resolver.Boundaries(e.FireAt, e.Window)
			if e.FireAt.Before(start) || !e.FireAt.Before(end) {
				t.Errorf("seed %d: event %d at %v outside %s [%v, %v)", seed, e.ID, e.FireAt, e.Window, start, end)
			}
		}
	}
}

func TestGenerator_Generate_ElapsedOccurrenceIsSkipped(t *testing.T) {
	// Midday is still "usable" at 13:59 but the buffer pushes the floor
	// past its end, so the picker reports it elapsed.
	now := time.Date(2025, 3, 10, 13, 59, 30, 0, time.UTC)
	g := newTestGenerator(now, 5)

	reminder := domain.Reminder{
		ID:      "r-skip",
		Cadence: domain.CadenceMultipleDaily,
		Windows: []domain.Window{domain.WindowMidday},
	}

	result, err := g.Generate(context.Background(), reminder, now, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.SkippedCount != 1 {
		t.Errorf("SkippedCount = %d, want 1", result.SkippedCount)
	}
	if len(result.Events) != DefaultHorizonDays-1 {
		t.Errorf("len(Events) = %d, want %d", len(result.Events), DefaultHorizonDays-1)
	}
}

func TestGenerator_Generate_IDsAreUnique(t *testing.T) {
	now := mondayAt(5, 0)
	g := newTestGenerator(now, 9)

	reminder := domain.Reminder{
		ID:      "r-unique",
		Cadence: domain.CadenceMultipleDaily,
		Windows: allWindows,
	}

	result, err := g.Generate(context.Background(), reminder, now, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 28 {
		t.Fatalf("len(Events) = %d, want 28", len(result.Events))
	}

	seen := make(map[int64]bool, len(result.Events))
	for _, e := range result.Events {
		if seen[e.ID] {
			t.Errorf("duplicate event id %d", e.ID)
		}
		seen[e.ID] = true
		if e.DayOffset < 1 {
			t.Errorf("event %d has day offset %d, want >= 1", e.ID, e.DayOffset)
		}
	}
}

func TestGenerator_Generate_SameSeedIsDeterministic(t *testing.T) {
	now := mondayAt(8, 15)
	reminder := domain.Reminder{
		ID:      "r-seeded",
		Cadence: domain.CadenceDaily,
		Windows: allWindows,
	}

	first, err := newTestGenerator(now, 42).Generate(context.Background(), reminder, now, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newTestGenerator(now, 42).Generate(context.Background(), reminder, now, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Events, second.Events) {
		t.Error("same seed produced different events")
	}
}

func TestGenerator_Generate_DailyOnePerDay(t *testing.T) {
	now := mondayAt(12, 41)
	g := newTestGenerator(now, 11)

	reminder := domain.Reminder{
		ID:      "r-daily",
		Cadence: domain.CadenceDaily,
		Windows: allWindows,
	}

	result, err := g.Generate(context.Background(), reminder, now, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Events) != DefaultHorizonDays {
		t.Fatalf("len(Events) = %d, want %d", len(result.Events), DefaultHorizonDays)
	}

	days := make(map[int]bool)
	for _, e := range result.Events {
		day := daysBetween(now, e.FireAt)
		if days[day] {
			t.Errorf("two events on day %d", day)
		}
		days[day] = true
		if day == 0 && e.Window == domain.WindowMorning {
			t.Error("daily picked elapsed morning window for today")
		}
	}
}

func TestGenerator_Generate_Weekly(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		weekday  int
		windows  []domain.Window
		wantDate time.Time
	}{
		{
			name:     "today matches with usable window",
			now:      mondayAt(7, 0),
			weekday:  1,
			windows:  []domain.Window{domain.WindowMorning},
			wantDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "today matches but window elapsed rolls a full week",
			now:      mondayAt(19, 0),
			weekday:  1,
			windows:  []domain.Window{domain.WindowMorning},
			wantDate: time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "later weekday this week",
			now:      mondayAt(19, 0),
			weekday:  3,
			windows:  []domain.Window{domain.WindowEvening},
			wantDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "sunday",
			now:      mondayAt(9, 0),
			weekday:  7,
			windows:  []domain.Window{domain.WindowAfternoon, domain.WindowEvening},
			wantDate: time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(tt.now, 2)
			reminder := domain.Reminder{
				ID:      "r-weekly",
				Cadence: domain.CadenceWeekly,
				Windows: tt.windows,
				Weekday: tt.weekday,
			}

			result, err := g.Generate(context.Background(), reminder, tt.now, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Events) != 1 {
				t.Fatalf("len(Events) = %d, want 1", len(result.Events))
			}

			got := startOfDay(result.Events[0].FireAt)
			if !got.Equal(tt.wantDate) {
				t.Errorf("event date = %v, want %v", got, tt.wantDate)
			}
			if !reminder.HasWindow(result.Events[0].Window) {
				t.Errorf("event window %s not configured", result.Events[0].Window)
			}
		})
	}
}

func TestGenerator_Generate_WeeklyBufferBoundary(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		windows    []domain.Window
		wantDate   time.Time
		wantWindow domain.Window
	}{
		{
			name:       "midday past buffer falls through to evening",
			now:        mondayAt(13, 59),
			windows:    []domain.Window{domain.WindowMidday, domain.WindowEvening},
			wantDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			wantWindow: domain.WindowEvening,
		},
		{
			name:       "only window past buffer rolls a full week",
			now:        mondayAt(21, 59),
			windows:    []domain.Window{domain.WindowEvening},
			wantDate:   time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
			wantWindow: domain.WindowEvening,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminder := domain.Reminder{
				ID:      "r-weekly-edge",
				Cadence: domain.CadenceWeekly,
				Windows: tt.windows,
				Weekday: 1,
			}

			for seed := uint64(1); seed <= 50; seed++ {
				result, err := newTestGenerator(tt.now, seed).Generate(context.Background(), reminder, tt.now, Options{})
				if err != nil {
					t.Fatalf("seed %d: unexpected error: %v", seed, err)
				}
				if len(result.Events) != 1 {
					t.Fatalf("seed %d: len(Events) = %d, want 1", seed, len(result.Events))
				}

				e := result.Events[0]
				if got := startOfDay(e.FireAt); !got.Equal(tt.wantDate) {
					t.Errorf("seed %d: event date = %v, want %v", seed, got, tt.wantDate)
				}
				if e.Window != tt.wantWindow {
					t.Errorf("seed %d: window = %s, want %s", seed, e.Window, tt.wantWindow)
				}
				if !e.FireAt.After(tt.now.Add(time.Minute)) {
					t.Errorf("seed %d: event fires at %v, not after now+buffer", seed, e.FireAt)
				}
			}
		})
	}
}

func TestGenerator_Generate_DailyBufferBoundary(t *testing.T) {
	tests := []struct {
		name         string
		now          time.Time
		windows      []domain.Window
		wantCount    int
		wantSkipped  int
		wantFirstDay int
		wantToday    domain.Window
	}{
		{
			name:         "midday past buffer falls through to evening",
			now:          mondayAt(13, 59),
			windows:      []domain.Window{domain.WindowMidday, domain.WindowEvening},
			wantCount:    DefaultHorizonDays,
			wantSkipped:  0,
			wantFirstDay: 0,
			wantToday:    domain.WindowEvening,
		},
		{
			name:         "every window past buffer skips today",
			now:          mondayAt(21, 59),
			windows:      allWindows,
			wantCount:    DefaultHorizonDays - 1,
			wantSkipped:  1,
			wantFirstDay: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminder := domain.Reminder{
				ID:      "r-daily-edge",
				Cadence: domain.CadenceDaily,
				Windows: tt.windows,
			}

			for seed := uint64(1); seed <= 50; seed++ {
				result, err := newTestGenerator(tt.now, seed).Generate(context.Background(), reminder, tt.now, Options{})
				if err != nil {
					t.Fatalf("seed %d: unexpected error: %v", seed, err)
				}
				if len(result.Events) != tt.wantCount {
					t.Fatalf("seed %d: len(Events) = %d, want %d", seed, len(result.Events), tt.wantCount)
				}
				if result.SkippedCount != tt.wantSkipped {
					t.Errorf("seed %d: SkippedCount = %d, want %d", seed, result.SkippedCount, tt.wantSkipped)
				}

				first := result.Events[0]
				if day := daysBetween(tt.now, first.FireAt); day != tt.wantFirstDay {
					t.Errorf("seed %d: first event on day %d, want %d", seed, day, tt.wantFirstDay)
				}
				if tt.wantFirstDay == 0 && first.Window != tt.wantToday {
					t.Errorf("seed %d: today's window = %s, want %s", seed, first.Window, tt.wantToday)
				}
			}
		})
	}
}

func TestGenerator_Generate_MonthlyClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantDate time.Time
	}{
		{
			name:     "regular month",
			now:      time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			wantDate: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "january 31 in common year",
			now:      time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC),
			wantDate: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "january 31 in leap year",
			now:      time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
			wantDate: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "december rolls year",
			now:      time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC),
			wantDate: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(tt.now, 4)
			reminder := domain.Reminder{
				ID:      "r-monthly",
				Cadence: domain.CadenceMonthly,
				Windows: []domain.Window{domain.WindowMorning},
			}

			result, err := g.Generate(context.Background(), reminder, tt.now, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Events) != 1 {
				t.Fatalf("len(Events) = %d, want 1", len(result.Events))
			}

			got := startOfDay(result.Events[0].FireAt)
			if !got.Equal(tt.wantDate) {
				t.Errorf("event date = %v, want %v", got, tt.wantDate)
			}
		})
	}
}

func TestGenerator_Generate_TruncatesAtMaxEvents(t *testing.T) {
	now := mondayAt(5, 0)
	g := newTestGenerator(now, 6)

	reminder := domain.Reminder{
		ID:      "r-cap",
		Cadence: domain.CadenceMultipleDaily,
		Windows: allWindows,
	}

	result, err := g.Generate(context.Background(), reminder, now, Options{MaxEvents: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Events) != 10 {
		t.Errorf("len(Events) = %d, want 10", len(result.Events))
	}
	if !result.Truncated {
		t.Error("Truncated = false, want true")
	}
}

func TestGenerator_Generate_InvalidReminder(t *testing.T) {
	now := mondayAt(12, 0)
	g := newTestGenerator(now, 1)

	_, err := g.Generate(context.Background(), domain.Reminder{ID: "r-bad", Cadence: domain.CadenceDaily}, now, Options{})
	if !errors.Is(err, domain.ErrInvalidReminder) {
		t.Errorf("error = %v, want ErrInvalidReminder", err)
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		in     time.Time
		months int
		want   time.Time
	}{
		{time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in.Format("2006-01-02"), func(t *testing.T) {
			if got := addMonthsClamped(tt.in, tt.months); !got.Equal(tt.want) {
				t.Errorf("addMonthsClamped() = %v, want %v", got, tt.want)
			}
		})
	}
}
