package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestReminderValidate(t *testing.T) {
	tests := []struct {
		name     string
		reminder Reminder
		wantErr  bool
	}{
		{
			name:     "valid multiple daily",
			reminder: Reminder{ID: "r1", Cadence: CadenceMultipleDaily, Windows: AllWindows},
		},
		{
			name:     "valid weekly sunday",
			reminder: Reminder{ID: "r1", Cadence: CadenceWeekly, Windows: []Window{WindowEvening}, Weekday: 7},
		},
		{
			name:     "empty id",
			reminder: Reminder{Cadence: CadenceDaily, Windows: []Window{WindowMorning}},
			wantErr:  true,
		},
		{
			name:     "no windows",
			reminder: Reminder{ID: "r1", Cadence: CadenceDaily},
			wantErr:  true,
		},
		{
			name: "too many windows",
			reminder: Reminder{ID: "r1", Cadence: CadenceDaily, Windows: []Window{
				WindowMorning, WindowMidday, WindowAfternoon, WindowEvening, WindowMorning,
			}},
			wantErr: true,
		},
		{
			name:     "duplicate window",
			reminder: Reminder{ID: "r1", Cadence: CadenceDaily, Windows: []Window{WindowMidday, WindowMidday}},
			wantErr:  true,
		},
		{
			name:     "unknown window value",
			reminder: Reminder{ID: "r1", Cadence: CadenceDaily, Windows: []Window{Window(9)}},
			wantErr:  true,
		},
		{
			name:     "unknown cadence",
			reminder: Reminder{ID: "r1", Cadence: "hourly", Windows: []Window{WindowMorning}},
			wantErr:  true,
		},
		{
			name:     "weekly without weekday",
			reminder: Reminder{ID: "r1", Cadence: CadenceWeekly, Windows: []Window{WindowMorning}},
			wantErr:  true,
		},
		{
			name:     "weekday ignored for daily",
			reminder: Reminder{ID: "r1", Cadence: CadenceDaily, Windows: []Window{WindowMorning}, Weekday: 42},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reminder.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidReminder) {
					t.Errorf("Validate() error = %v, want ErrInvalidReminder", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestWindowHours(t *testing.T) {
	tests := []struct {
		window Window
		index  int
		start  int
		end    int
		label  string
	}{
		{WindowMorning, 0, 6, 10, "morning"},
		{WindowMidday, 1, 10, 14, "midday"},
		{WindowAfternoon, 2, 14, 18, "afternoon"},
		{WindowEvening, 3, 18, 22, "evening"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if tt.window.Index() != tt.index {
				t.Errorf("Index() = %d, want %d", tt.window.Index(), tt.index)
			}
			if tt.window.StartHour() != tt.start || tt.window.EndHour() != tt.end {
				t.Errorf("hours = [%d, %d), want [%d, %d)", tt.window.StartHour(), tt.window.EndHour(), tt.start, tt.end)
			}

			parsed, err := ParseWindow(tt.label)
			if err != nil {
				t.Fatalf("ParseWindow(%q) error: %v", tt.label, err)
			}
			if parsed != tt.window {
				t.Errorf("ParseWindow(%q) = %v, want %v", tt.label, parsed, tt.window)
			}
		})
	}

	if _, err := ParseWindow("night"); !errors.Is(err, ErrInvalidReminder) {
		t.Errorf("ParseWindow(night) error = %v, want ErrInvalidReminder", err)
	}
}

func TestReminderTimeWeekday(t *testing.T) {
	tests := []struct {
		iso  int
		want time.Weekday
	}{
		{1, time.Monday},
		{5, time.Friday},
		{7, time.Sunday},
	}

	for _, tt := range tests {
		r := Reminder{Weekday: tt.iso}
		if got := r.TimeWeekday(); got != tt.want {
			t.Errorf("TimeWeekday(%d) = %v, want %v", tt.iso, got, tt.want)
		}
	}
}

func TestScheduledEventSinkKey(t *testing.T) {
	event := ScheduledEvent{ID: 1234011, OwnerReminderID: "breathing"}

	if got := event.SinkKey(); got != "breathing:1234011" {
		t.Errorf("SinkKey() = %q, want %q", got, "breathing:1234011")
	}

	other := ScheduledEvent{ID: 1, OwnerReminderID: "abcd"}
	if strings.HasPrefix(other.SinkKey(), OwnerPrefix("abc")) {
		t.Errorf("SinkKey() %q matched owner prefix of a different reminder", other.SinkKey())
	}
}

func TestOwnerPrefix_SeparatorInID(t *testing.T) {
	tests := []struct {
		name   string
		owner  string
		other  string
		prefix string
	}{
		{"nested id does not match parent", "a:b", "a", "a:"},
		{"parent does not match nested id", "a", "a:b", "a%3Ab:"},
		{"escaped form is not confused with separator", "a%3Ab", "a:b", "a%3Ab:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OwnerPrefix(tt.other); got != tt.prefix {
				t.Fatalf("OwnerPrefix(%q) = %q, want %q", tt.other, got, tt.prefix)
			}

			event := ScheduledEvent{ID: 7, OwnerReminderID: tt.owner}
			if !strings.HasPrefix(event.SinkKey(), OwnerPrefix(tt.owner)) {
				t.Errorf("SinkKey() %q lost its own owner prefix", event.SinkKey())
			}
			if strings.HasPrefix(event.SinkKey(), OwnerPrefix(tt.other)) {
				t.Errorf("SinkKey() %q of %q matched owner prefix of %q", event.SinkKey(), tt.owner, tt.other)
			}
		})
	}
}

func TestReminderNotificationText(t *testing.T) {
	untitled := Reminder{ID: "r1"}
	if untitled.NotificationTitle() != defaultTitle {
		t.Errorf("NotificationTitle() = %q, want default", untitled.NotificationTitle())
	}

	titled := Reminder{ID: "r2", Title: "Breathing"}
	if titled.NotificationBody() != "Time for Breathing. Take a mindful moment." {
		t.Errorf("NotificationBody() = %q", titled.NotificationBody())
	}

	custom := Reminder{ID: "r3", Title: "Walk", Message: "Stretch your legs"}
	if custom.NotificationBody() != "Stretch your legs" {
		t.Errorf("NotificationBody() = %q", custom.NotificationBody())
	}
}
