package domain

import "time"

// RefreshState is written after a successful regeneration pass and read at
// startup to decide whether recovery is needed.
type RefreshState struct {
	LastRefreshAt time.Time `json:"last_refresh_at"`
	ReminderIDs   []string  `json:"reminder_ids"`
}

func NewRefreshState(at time.Time, reminderIDs []string) *RefreshState {
	ids := make([]string, len(reminderIDs))
	copy(ids, reminderIDs)
	return &RefreshState{
		LastRefreshAt: at,
		ReminderIDs:   ids,
	}
}

func (s *RefreshState) Contains(reminderID string) bool {
	if s == nil {
		return false
	}
	for _, id := range s.ReminderIDs {
		if id == reminderID {
			return true
		}
	}
	return false
}
