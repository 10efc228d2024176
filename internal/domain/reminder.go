package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	MaxWindowsPerReminder = 4

	defaultTitle = "Mindfulness reminder"
)

// Reminder is a user-defined mindfulness activity reminder. It is owned by
// the surrounding application and never mutated here.
type Reminder struct {
	ID      string
	Title   string
	Message string
	Cadence Cadence
	Windows []Window
	// Weekday is ISO-8601 (1=Monday ... 7=Sunday); only meaningful for weekly reminders.
	Weekday int
	Enabled bool
}

// Validate rejects reminders that cannot be scheduled.
func (r Reminder) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty reminder id", ErrInvalidReminder)
	}
	if !r.Cadence.IsValid() {
		return fmt.Errorf("%w: reminder %s has unknown cadence %q", ErrInvalidReminder, r.ID, r.Cadence)
	}
	if len(r.Windows) == 0 {
		return fmt.Errorf("%w: reminder %s has no windows", ErrInvalidReminder, r.ID)
	}
	if len(r.Windows) > MaxWindowsPerReminder {
		return fmt.Errorf("%w: reminder %s has %d windows", ErrInvalidReminder, r.ID, len(r.Windows))
	}

	seen := make(map[Window]bool, len(r.Windows))
	for _, w := range r.Windows {
		if !w.IsValid() {
			return fmt.Errorf("%w: reminder %s has unknown window %d", ErrInvalidReminder, r.ID, int(w))
		}
		if seen[w] {
			return fmt.Errorf("%w: reminder %s repeats window %s", ErrInvalidReminder, r.ID, w)
		}
		seen[w] = true
	}

	if r.Cadence == CadenceWeekly && (r.Weekday < 1 || r.Weekday > 7) {
		return fmt.Errorf("%w: reminder %s has weekday %d", ErrInvalidReminder, r.ID, r.Weekday)
	}

	return nil
}

// HasWindow reports whether w is one of the configured windows.
func (r Reminder) HasWindow(w Window) bool {
	for _, configured := range r.Windows {
		if configured == w {
			return true
		}
	}
	return false
}

// TimeWeekday converts the ISO weekday to time.Weekday.
func (r Reminder) TimeWeekday() time.Weekday {
	return time.Weekday(r.Weekday % 7)
}

func (r Reminder) NotificationTitle() string {
	if r.Title == "" {
		return defaultTitle
	}
	return r.Title
}

func (r Reminder) NotificationBody() string {
	if r.Message != "" {
		return r.Message
	}
	if r.Title == "" {
		return "Take a mindful moment."
	}
	return fmt.Sprintf("Time for %s. Take a mindful moment.", r.Title)
}

// ownerKeyEscaper keeps the key separator out of reminder ids, which are
// opaque and may contain it. The escape byte itself is escaped first so the
// mapping stays injective.
var ownerKeyEscaper = strings.NewReplacer("%", "%25", ownerKeySeparator, "%3A")

const ownerKeySeparator = ":"

// OwnerPrefix is the sink key prefix shared by every event of one reminder.
// The escaped id never contains the separator, so "a:" matches neither
// "abcd:1" nor the events of reminder "a:b".
func OwnerPrefix(reminderID string) string {
	return ownerKeyEscaper.Replace(reminderID) + ownerKeySeparator
}

// AllOwnersPrefix matches events of every reminder.
const AllOwnersPrefix = ""

func EnabledReminders(reminders []Reminder) []Reminder {
	enabled := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}
	return enabled
}
