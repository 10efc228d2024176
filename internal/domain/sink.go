package domain

import "context"

//go:generate mockgen -source=sink.go -destination=sink_mock.go -package=domain

// NotificationSink is the platform facility that actually fires reminders.
type NotificationSink interface {
	Schedule(ctx context.Context, event ScheduledEvent) error
	CancelAll(ctx context.Context, ownerPrefix string) error
}
