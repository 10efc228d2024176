package sqlitestate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

const appStateKeyRefreshState = "refresh_state"

// Open opens the database file and brings its schema up to date.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("open sqlite: empty path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

type refreshStateRecord struct {
	LastRefreshAt time.Time `json:"last_refresh_at"`
	ReminderIDs   []string  `json:"reminder_ids"`
}

type refreshStateRepository struct {
	db *sql.DB
}

func NewRefreshStateRepository(db *sql.DB) domain.RefreshStateRepository {
	return &refreshStateRepository{db: db}
}

func (r *refreshStateRepository) Load(ctx context.Context) (*domain.RefreshState, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, appStateKeyRefreshState).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRefreshStateNotFound
		}
		return nil, fmt.Errorf("load refresh state: %w", err)
	}

	var record refreshStateRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return nil, fmt.Errorf("load refresh state: decode: %w", err)
	}

	return domain.NewRefreshState(record.LastRefreshAt, record.ReminderIDs), nil
}

func (r *refreshStateRepository) Save(ctx context.Context, state *domain.RefreshState) error {
	if state == nil {
		return fmt.Errorf("save refresh state: state is nil")
	}

	ids := state.ReminderIDs
	if ids == nil {
		ids = []string{}
	}

	data, err := json.Marshal(refreshStateRecord{
		LastRefreshAt: state.LastRefreshAt,
		ReminderIDs:   ids,
	})
	if err != nil {
		return fmt.Errorf("save refresh state: encode: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO app_state(key, value, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		appStateKeyRefreshState,
		string(data),
		now,
	)
	if err != nil {
		return fmt.Errorf("save refresh state: upsert: %w", err)
	}

	return nil
}

type scheduledEventIndex struct {
	db *sql.DB
}

func NewScheduledEventIndex(db *sql.DB) domain.ScheduledEventIndex {
	return &scheduledEventIndex{db: db}
}

func (i *scheduledEventIndex) Add(ctx context.Context, sinkKey, taskName string) error {
	if sinkKey == "" {
		return fmt.Errorf("add scheduled event: empty sink key")
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := i.db.ExecContext(ctx,
		`INSERT INTO scheduled_events(sink_key, task_name, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(sink_key) DO UPDATE SET task_name = excluded.task_name, created_at = excluded.created_at`,
		sinkKey,
		taskName,
		now,
	)
	if err != nil {
		return fmt.Errorf("add scheduled event: upsert: %w", err)
	}

	return nil
}

// ListByPrefix compares the literal prefix with substr so that LIKE
// wildcards in reminder ids have no effect.
func (i *scheduledEventIndex) ListByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	rows, err := i.db.QueryContext(ctx,
		`SELECT sink_key, task_name FROM scheduled_events WHERE substr(sink_key, 1, length(?)) = ?`,
		prefix,
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("list scheduled events: query: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var key, task string
		if err := rows.Scan(&key, &task); err != nil {
			return nil, fmt.Errorf("list scheduled events: scan: %w", err)
		}
		entries[key] = task
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scheduled events: rows: %w", err)
	}

	return entries, nil
}

func (i *scheduledEventIndex) Remove(ctx context.Context, sinkKeys ...string) error {
	if len(sinkKeys) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sinkKeys)), ",")
	args := make([]any, len(sinkKeys))
	for n, key := range sinkKeys {
		args[n] = key
	}

	_, err := i.db.ExecContext(ctx, `DELETE FROM scheduled_events WHERE sink_key IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("remove scheduled events: delete: %w", err)
	}

	return nil
}
