//go:build !gcloud

package regenrecorder

import (
	"context"
	"log/slog"
	"sync"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

const measurement = "regeneration_pass"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking

	mu      sync.Mutex
	pending []*write.Point
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RegenerationRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "regeneration result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, regeneration result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "regeneration result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

func toPoint(record domain.RegenerationRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	return influxdb2.NewPoint(
		measurement,
		map[string]string{
			"run_id":  runID,
			"trigger": record.Trigger,
		},
		map[string]any{
			"reminder_count":  record.ReminderCount,
			"scheduled_count": record.ScheduledCount,
			"failed_count":    record.FailedCount,
			"skipped_count":   record.SkippedCount,
			"rejected_count":  record.RejectedCount,
			"truncated":       record.Truncated,
		},
		record.StartedAt,
	)
}

func (r *influxDBRecorder) RecordRegeneration(_ context.Context, record domain.RegenerationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, toPoint(record))
	return nil
}

// Flush writes buffered passes. Write failures are logged and dropped so a
// recorder outage never fails a regeneration pass.
func (r *influxDBRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	points := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(points) == 0 {
		return nil
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write regeneration results to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("point_count", len(points)),
		)
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
