package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

const (
	refreshStateKey = "reminder:refresh_state"
)

type refreshStateRecord struct {
	LastRefreshAt time.Time `json:"last_refresh_at"`
	ReminderIDs   []string  `json:"reminder_ids"`
	SavedAt       time.Time `json:"saved_at"`
}

type refreshStateRepository struct {
	client *redis.Client
}

func NewRefreshStateRepository(client *redis.Client) domain.RefreshStateRepository {
	return &refreshStateRepository{
		client: client,
	}
}

func (r *refreshStateRepository) Load(ctx context.Context) (*domain.RefreshState, error) {
	data, err := r.client.Get(ctx, refreshStateKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRefreshStateNotFound
		}
		return nil, err
	}

	var record refreshStateRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidRefreshStateData
	}

	return domain.NewRefreshState(record.LastRefreshAt, record.ReminderIDs), nil
}

// Save overwrites the previous state. The key never expires: a missing key
// means "never refreshed" and would force an early regeneration.
func (r *refreshStateRepository) Save(ctx context.Context, state *domain.RefreshState) error {
	if state == nil {
		return ErrInvalidRefreshStateData
	}

	ids := state.ReminderIDs
	if ids == nil {
		ids = []string{}
	}

	record := refreshStateRecord{
		LastRefreshAt: state.LastRefreshAt,
		ReminderIDs:   ids,
		SavedAt:       time.Now(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidRefreshStateData
	}

	return r.client.Set(ctx, refreshStateKey, data, 0).Err()
}
