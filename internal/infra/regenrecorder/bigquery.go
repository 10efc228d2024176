//go:build gcloud

package regenrecorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt     time.Time `bigquery:"recorded_at"`
	StartedAt      time.Time `bigquery:"started_at"`
	RunID          string    `bigquery:"run_id"`
	Trigger        string    `bigquery:"trigger"`
	ReminderCount  int64     `bigquery:"reminder_count"`
	ScheduledCount int64     `bigquery:"scheduled_count"`
	FailedCount    int64     `bigquery:"failed_count"`
	SkippedCount   int64     `bigquery:"skipped_count"`
	RejectedCount  int64     `bigquery:"rejected_count"`
	Truncated      bool      `bigquery:"truncated"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter

	mu      sync.Mutex
	pending []*bigQueryRecord
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RegenerationRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "regeneration result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, regeneration result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, regeneration result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	slog.InfoContext(ctx, "regeneration result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordRegeneration(_ context.Context, record domain.RegenerationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, &bigQueryRecord{
		RecordedAt:     time.Now(),
		StartedAt:      record.StartedAt,
		RunID:          record.RunID,
		Trigger:        record.Trigger,
		ReminderCount:  int64(record.ReminderCount),
		ScheduledCount: int64(record.ScheduledCount),
		FailedCount:    int64(record.FailedCount),
		SkippedCount:   int64(record.SkippedCount),
		RejectedCount:  int64(record.RejectedCount),
		Truncated:      record.Truncated,
	})
	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	rows := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(rows) == 0 {
		return nil
	}

	if err := r.inserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert regeneration results to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(rows)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
