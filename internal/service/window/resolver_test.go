package window

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

func TestResolver_Boundaries(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	date := time.Date(2025, 3, 10, 12, 41, 33, 0, loc)
	resolver := NewResolver()

	tests := []struct {
		window    domain.Window
		wantStart time.Time
		wantEnd   time.Time
	}{
		{domain.WindowMorning, time.Date(2025, 3, 10, 6, 0, 0, 0, loc), time.Date(2025, 3, 10, 10, 0, 0, 0, loc)},
		{domain.WindowMidday, time.Date(2025, 3, 10, 10, 0, 0, 0, loc), time.Date(2025, 3, 10, 14, 0, 0, 0, loc)},
		{domain.WindowAfternoon, time.Date(2025, 3, 10, 14, 0, 0, 0, loc), time.Date(2025, 3, 10, 18, 0, 0, 0, loc)},
		{domain.WindowEvening, time.Date(2025, 3, 10, 18, 0, 0, 0, loc), time.Date(2025, 3, 10, 22, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.window.String(), func(t *testing.T) {
			start, end := resolver.Boundaries(date, tt.window)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
			if start.Location() != loc {
				t.Errorf("start location = %v, want %v", start.Location(), loc)
			}
		})
	}
}

func TestResolver_UsableToday(t *testing.T) {
	resolver := NewResolver()

	tests := []struct {
		name string
		now  time.Time
		want []domain.Window
	}{
		{
			name: "early morning keeps all",
			now:  time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC),
			want: domain.AllWindows,
		},
		{
			name: "inside morning keeps morning",
			now:  time.Date(2025, 3, 10, 9, 59, 0, 0, time.UTC),
			want: domain.AllWindows,
		},
		{
			name: "12:41 drops morning",
			now:  time.Date(2025, 3, 10, 12, 41, 0, 0, time.UTC),
			want: []domain.Window{domain.WindowMidday, domain.WindowAfternoon, domain.WindowEvening},
		},
		{
			name: "exactly at end boundary drops window",
			now:  time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
			want: []domain.Window{domain.WindowAfternoon, domain.WindowEvening},
		},
		{
			name: "late night keeps none",
			now:  time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC),
			want: []domain.Window{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.UsableToday(tt.now)
			if !equalWindows(got, tt.want) {
				t.Errorf("UsableToday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolver_UsableFor(t *testing.T) {
	resolver := NewResolver()
	now := time.Date(2025, 3, 10, 12, 41, 0, 0, time.UTC)

	tests := []struct {
		name       string
		configured []domain.Window
		want       []domain.Window
	}{
		{
			name:       "morning only is empty",
			configured: []domain.Window{domain.WindowMorning},
			want:       []domain.Window{},
		},
		{
			name:       "midday still usable",
			configured: []domain.Window{domain.WindowMidday},
			want:       []domain.Window{domain.WindowMidday},
		},
		{
			name:       "keeps configured order",
			configured: []domain.Window{domain.WindowEvening, domain.WindowMorning, domain.WindowMidday},
			want:       []domain.Window{domain.WindowEvening, domain.WindowMidday},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.UsableFor(now, tt.configured)
			if !equalWindows(got, tt.want) {
				t.Errorf("UsableFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func equalWindows(a, b []domain.Window) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
