package reminderfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

// fileReminder is one entry of the reminders YAML file:
//
//	reminders:
//	  - id: breathing
//	    title: Breathing
//	    cadence: multiple_daily
//	    windows: [morning, evening]
//	  - id: walk
//	    cadence: weekly
//	    weekday: 6
//	    windows: [afternoon]
//	    enabled: false
type fileReminder struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Message string   `yaml:"message"`
	Cadence string   `yaml:"cadence"`
	Windows []string `yaml:"windows"`
	Weekday int      `yaml:"weekday"`
	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled"`
}

type fileDocument struct {
	Reminders []fileReminder `yaml:"reminders"`
}

// Source reads reminders from a YAML file on every call so edits are picked
// up without a restart.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

var _ domain.ReminderSource = (*Source)(nil)

func (s *Source) Path() string {
	return s.path
}

func (s *Source) ListReminders(_ context.Context) ([]domain.Reminder, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read reminders file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a reminders document. Unknown window labels are kept as
// invalid windows so validation rejects the reminder later.
func Parse(data []byte) ([]domain.Reminder, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse reminders file: %w", err)
	}

	reminders := make([]domain.Reminder, 0, len(doc.Reminders))
	for _, fr := range doc.Reminders {
		windows := make([]domain.Window, 0, len(fr.Windows))
		for _, label := range fr.Windows {
			w, err := domain.ParseWindow(strings.ToLower(strings.TrimSpace(label)))
			if err != nil {
				w = domain.Window(-1)
			}
			windows = append(windows, w)
		}

		enabled := true
		if fr.Enabled != nil {
			enabled = *fr.Enabled
		}

		reminders = append(reminders, domain.Reminder{
			ID:      fr.ID,
			Title:   fr.Title,
			Message: fr.Message,
			Cadence: domain.Cadence(strings.ToLower(fr.Cadence)),
			Windows: windows,
			Weekday: fr.Weekday,
			Enabled: enabled,
		})
	}

	return reminders, nil
}
