package domain

import (
	"context"
	"time"
)

type RegenerationRecord struct {
	RunID          string
	Trigger        string
	StartedAt      time.Time
	ReminderCount  int
	ScheduledCount int
	FailedCount    int
	SkippedCount   int
	RejectedCount  int
	Truncated      bool
}

type RegenerationRecorder interface {
	RecordRegeneration(ctx context.Context, record RegenerationRecord) error
	Flush(ctx context.Context) error
	Close() error
}
