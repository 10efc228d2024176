package picker

import (
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/clock"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/window"
)

// fixedSource returns the same draw, clamped to the requested range.
type fixedSource struct {
	value int
	calls []int
}

func (s *fixedSource) IntN(n int) int {
	s.calls = append(s.calls, n)
	if s.value >= n {
		return n - 1
	}
	return s.value
}

func TestPicker_Pick_FutureDayUsesWholeWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 41, 0, 0, time.UTC)
	p := NewPicker(window.NewResolver(), clock.NewFixedClock(now), time.Minute)

	tests := []struct {
		name  string
		draw  int
		want  time.Time
		wantN int
	}{
		{"lowest draw is window start", 0, time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC), 240},
		{"highest draw is last minute", 239, time.Date(2025, 3, 11, 9, 59, 0, 0, time.UTC), 240},
		{"middle draw", 90, time.Date(2025, 3, 11, 7, 30, 0, 0, time.UTC), 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fixedSource{value: tt.draw}
			got, err := p.Pick(now.AddDate(0, 0, 1), domain.WindowMorning, now, false, src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Pick() = %v, want %v", got, tt.want)
			}
			if len(src.calls) != 1 || src.calls[0] != tt.wantN {
				t.Errorf("IntN calls = %v, want [%d]", src.calls, tt.wantN)
			}
		})
	}
}

func TestPicker_Pick_TodayStartsAfterSafetyBuffer(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 41, 20, 0, time.UTC)
	p := NewPicker(window.NewResolver(), clock.NewFixedClock(now), time.Minute)

	src := &fixedSource{value: 0}
	got, err := p.Pick(now, domain.WindowMidday, now, true, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 3, 10, 12, 43, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Pick() = %v, want %v", got, want)
	}
	if !got.After(now.Add(p.SafetyBuffer())) {
		t.Errorf("Pick() = %v is not after now+buffer", got)
	}
	// 12:43 to 14:00
	if len(src.calls) != 1 || src.calls[0] != 77 {
		t.Errorf("IntN calls = %v, want [77]", src.calls)
	}
}

func TestPicker_Pick_TodayBeforeWindowUsesWindowStart(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	p := NewPicker(window.NewResolver(), clock.NewFixedClock(now), time.Minute)

	got, err := p.Pick(now, domain.WindowEvening, now, true, &fixedSource{value: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Pick() = %v, want %v", got, want)
	}
}

func TestPicker_Pick_Elapsed(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		window domain.Window
	}{
		{
			name:   "window fully past",
			now:    time.Date(2025, 3, 10, 12, 41, 0, 0, time.UTC),
			window: domain.WindowMorning,
		},
		{
			name:   "buffer pushes past end",
			now:    time.Date(2025, 3, 10, 13, 59, 30, 0, time.UTC),
			window: domain.WindowMidday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPicker(window.NewResolver(), clock.NewFixedClock(tt.now), time.Minute)
			_, err := p.Pick(tt.now, tt.window, tt.now, true, &fixedSource{})
			if !errors.Is(err, domain.ErrElapsed) {
				t.Errorf("Pick() error = %v, want ErrElapsed", err)
			}
		})
	}
}

func TestPicker_Pick_LastMinuteNeedsNoDraw(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 57, 10, 0, time.UTC)
	p := NewPicker(window.NewResolver(), clock.NewFixedClock(now), time.Minute)

	src := &fixedSource{}
	got, err := p.Pick(now, domain.WindowMidday, now, true, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 3, 10, 13, 59, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Pick() = %v, want %v", got, want)
	}
	if len(src.calls) != 0 {
		t.Errorf("IntN should not be called for a one-minute range, got %v", src.calls)
	}
}

func TestPicker_Pick_ClampsToLiveClock(t *testing.T) {
	generatedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// the live clock has moved on while the batch was being built
	live := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	p := NewPicker(window.NewResolver(), clock.NewFixedClock(live), time.Minute)

	got, err := p.Pick(generatedAt, domain.WindowMorning, generatedAt, true, &fixedSource{value: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := live.Add(time.Minute)
	if !got.Equal(want) {
		t.Errorf("Pick() = %v, want %v", got, want)
	}
}

func TestNewPicker_EnforcesMinimumBuffer(t *testing.T) {
	p := NewPicker(window.NewResolver(), clock.NewFixedClock(time.Now()), 10*time.Second)

	if p.SafetyBuffer() != MinSafetyBuffer {
		t.Errorf("SafetyBuffer() = %v, want %v", p.SafetyBuffer(), MinSafetyBuffer)
	}
}
