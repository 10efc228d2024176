package handler

import (
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/regenerate"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PassResponse is the summary of one regeneration pass. Error is set when the
// pass completed with failures.
type PassResponse struct {
	*regenerate.Response
	Error string `json:"error,omitempty"`
}

type RefreshResponse struct {
	Refreshed bool                 `json:"refreshed"`
	Result    *regenerate.Response `json:"result,omitempty"`
	Error     string               `json:"error,omitempty"`
}

type PreviewResponse struct {
	ReminderID   string                 `json:"reminder_id"`
	Cadence      domain.Cadence         `json:"cadence"`
	GeneratedAt  time.Time              `json:"generated_at"`
	SkippedCount int                    `json:"skipped_count"`
	Truncated    bool                   `json:"truncated"`
	Events       []regenerate.EventItem `json:"events"`
}

type CancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toPreviewResponse(p *regenerate.Preview) PreviewResponse {
	events := make([]regenerate.EventItem, 0, len(p.Events))
	for _, ev := range p.Events {
		events = append(events, regenerate.EventItem{
			ID:        ev.ID,
			FireAt:    ev.FireAt,
			Window:    ev.Window,
			DayOffset: ev.DayOffset,
		})
	}

	return PreviewResponse{
		ReminderID:   p.Reminder.ID,
		Cadence:      p.Reminder.Cadence,
		GeneratedAt:  p.GeneratedAt,
		SkippedCount: p.SkippedCount,
		Truncated:    p.Truncated,
		Events:       events,
	}
}
