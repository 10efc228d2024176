package domain

import "context"

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=domain

// RefreshStateRepository persists the last successful regeneration pass.
// Load returns ErrRefreshStateNotFound when nothing has been saved yet.
type RefreshStateRepository interface {
	Load(ctx context.Context) (*RefreshState, error)
	Save(ctx context.Context, state *RefreshState) error
}

// ScheduledEventIndex maps sink keys to the platform task names backing them,
// so that events can be cancelled by owner prefix.
type ScheduledEventIndex interface {
	Add(ctx context.Context, sinkKey, taskName string) error
	ListByPrefix(ctx context.Context, prefix string) (map[string]string, error)
	Remove(ctx context.Context, sinkKeys ...string) error
}

// ReminderSource lists the reminders owned by the surrounding application.
type ReminderSource interface {
	ListReminders(ctx context.Context) ([]Reminder, error)
}
