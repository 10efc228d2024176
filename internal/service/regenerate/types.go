package regenerate

import (
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

// Trigger names the caller of a regeneration pass.
type Trigger string

const (
	TriggerBoot           Trigger = "boot"
	TriggerPeriodic       Trigger = "periodic"
	TriggerManual         Trigger = "manual"
	TriggerReminderChange Trigger = "reminder_change"
	TriggerForeground     Trigger = "foreground"
)

func (t Trigger) String() string {
	return string(t)
}

type EventItem struct {
	ID        int64         `json:"id"`
	FireAt    time.Time     `json:"fire_at"`
	Window    domain.Window `json:"window"`
	DayOffset int           `json:"day_offset"`
	Error     string        `json:"error,omitempty"`
}

type ResultItem struct {
	ReminderID     string         `json:"reminder_id"`
	Cadence        domain.Cadence `json:"cadence"`
	ScheduledCount int            `json:"scheduled_count"`
	FailedCount    int            `json:"failed_count"`
	SkippedCount   int            `json:"skipped_count"`
	Rejected       bool           `json:"rejected"`
	Truncated      bool           `json:"truncated"`
	Events         []EventItem    `json:"events"`
	Error          string         `json:"error,omitempty"`
}

type Response struct {
	RunID               string       `json:"run_id"`
	Trigger             Trigger      `json:"trigger"`
	GeneratedAt         time.Time    `json:"generated_at"`
	ReminderCount       int          `json:"reminder_count"`
	ScheduledCount      int          `json:"scheduled_count"`
	FailedCount         int          `json:"failed_count"`
	SkippedCount        int          `json:"skipped_count"`
	RejectedCount       int          `json:"rejected_count"`
	StaleCancelledCount int          `json:"stale_cancelled_count"`
	Truncated           bool         `json:"truncated"`
	Results             []ResultItem `json:"results"`
}

func (r *Response) add(item ResultItem) {
	r.ScheduledCount += item.ScheduledCount
	r.FailedCount += item.FailedCount
	r.SkippedCount += item.SkippedCount
	if item.Rejected {
		r.RejectedCount++
	}
	if item.Truncated {
		r.Truncated = true
	}
	r.Results = append(r.Results, item)
}

// Preview is a generated schedule that was never handed to the sink.
type Preview struct {
	Reminder     domain.Reminder
	GeneratedAt  time.Time
	Events       []domain.ScheduledEvent
	SkippedCount int
	Truncated    bool
}

// Options tunes a regeneration pass. Zero values fall back to defaults.
type Options struct {
	HorizonDays         int
	MaxEvents           int
	SafetyBuffer        time.Duration
	DispatchConcurrency int
}
