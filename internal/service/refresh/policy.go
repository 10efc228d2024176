package refresh

import (
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

// DefaultStaleAfter leaves an hour of slack over the daily periodic job.
const DefaultStaleAfter = 25 * time.Hour

// Policy decides when a full regeneration is due.
type Policy struct {
	staleAfter time.Duration
}

func NewPolicy(staleAfter time.Duration) *Policy {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Policy{staleAfter: staleAfter}
}

func (p *Policy) StaleAfter() time.Duration {
	return p.staleAfter
}

// IsRefreshDue is true when no state was ever saved or the last pass is
// older than the staleness threshold.
func (p *Policy) IsRefreshDue(state *domain.RefreshState, now time.Time) bool {
	if state == nil || state.LastRefreshAt.IsZero() {
		return true
	}
	return now.Sub(state.LastRefreshAt) > p.staleAfter
}
