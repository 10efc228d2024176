package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrElapsed marks a single (day, window) slot that can no longer be reached.
	ErrElapsed = errors.New("window elapsed")

	// ErrInvalidReminder rejects a reminder before generation begins.
	ErrInvalidReminder = errors.New("invalid reminder configuration")

	ErrReminderNotFound     = errors.New("reminder not found")
	ErrRefreshStateNotFound = errors.New("refresh state not found")
)

// SinkError records one scheduling call rejected by the notification sink.
type SinkError struct {
	EventID         int64
	OwnerReminderID string
	Err             error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink rejected event %d of reminder %s: %v", e.EventID, e.OwnerReminderID, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
