package reminderfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

const sampleYAML = `
reminders:
  - id: breathing
    title: Breathing
    cadence: multiple_daily
    windows: [morning, Evening]
  - id: walk
    cadence: weekly
    weekday: 6
    windows: [afternoon]
    enabled: false
  - id: typo
    cadence: daily
    windows: [dusk]
`

func TestParse(t *testing.T) {
	reminders, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reminders) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(reminders))
	}

	tests := []struct {
		name      string
		reminder  domain.Reminder
		enabled   bool
		wantValid bool
	}{
		{"defaults to enabled", reminders[0], true, true},
		{"explicitly disabled", reminders[1], false, true},
		{"unknown window rejected", reminders[2], true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.reminder.Enabled != tt.enabled {
				t.Errorf("expected enabled %v, got %v", tt.enabled, tt.reminder.Enabled)
			}
			err := tt.reminder.Validate()
			if tt.wantValid && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
			if !tt.wantValid && !errors.Is(err, domain.ErrInvalidReminder) {
				t.Errorf("expected ErrInvalidReminder, got %v", err)
			}
		})
	}

	if reminders[0].Windows[1] != domain.WindowEvening {
		t.Errorf("expected evening window, got %v", reminders[0].Windows[1])
	}
	if reminders[1].Cadence != domain.CadenceWeekly || reminders[1].Weekday != 6 {
		t.Errorf("unexpected weekly reminder %+v", reminders[1])
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("reminders: [")); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestSource_ListReminders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	reminders, err := NewSource(path).ListReminders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reminders) != 3 {
		t.Errorf("expected 3 reminders, got %d", len(reminders))
	}

	if _, err := NewSource(filepath.Join(t.TempDir(), "missing.yaml")).ListReminders(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}
