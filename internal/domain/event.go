package domain

import (
	"strconv"
	"time"
)

// ScheduledEvent is one concrete notification handed to the sink.
type ScheduledEvent struct {
	ID              int64
	OwnerReminderID string
	Title           string
	Body            string
	FireAt          time.Time
	Window          Window
	DayOffset       int
}

// SinkKey identifies the event inside the sink; it always starts with OwnerPrefix.
func (e ScheduledEvent) SinkKey() string {
	return OwnerPrefix(e.OwnerReminderID) + strconv.FormatInt(e.ID, 10)
}
