package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/regenerate"
)

const (
	DefaultSchedule = "@every 24h"
	defaultTimeout  = 5 * time.Minute
)

type Regenerator interface {
	RegenerateAll(ctx context.Context, trigger regenerate.Trigger) (*regenerate.Response, error)
}

// RefreshJob rolls the scheduling horizon forward on a cron schedule.
type RefreshJob struct {
	cron        *cron.Cron
	regenerator Regenerator
	schedule    string
	timeout     time.Duration

	baseCtx context.Context
	entryID cron.EntryID
}

func NewRefreshJob(regenerator Regenerator, schedule string, loc *time.Location) (*RefreshJob, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if loc == nil {
		loc = time.Local
	}

	j := &RefreshJob{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		regenerator: regenerator,
		schedule:    schedule,
		timeout:     defaultTimeout,
		baseCtx:     context.Background(),
	}

	id, err := j.cron.AddFunc(schedule, j.run)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	j.entryID = id

	return j, nil
}

// Start runs the scheduler in the background; ctx bounds every run.
func (j *RefreshJob) Start(ctx context.Context) {
	j.baseCtx = ctx
	j.cron.Start()

	slog.InfoContext(ctx, "refresh job started",
		slog.String("event", "job.refresh.start"),
		slog.String("schedule", j.schedule),
		slog.Time("next_run", j.Next()),
	)
}

// Stop prevents new runs and waits for a running pass to return.
func (j *RefreshJob) Stop() {
	<-j.cron.Stop().Done()
}

func (j *RefreshJob) Next() time.Time {
	return j.cron.Entry(j.entryID).Next
}

func (j *RefreshJob) run() {
	ctx, cancel := context.WithTimeout(j.baseCtx, j.timeout)
	defer cancel()

	resp, err := j.regenerator.RegenerateAll(ctx, regenerate.TriggerPeriodic)
	if err != nil {
		slog.ErrorContext(ctx, "periodic regeneration failed",
			slog.String("event", "job.refresh.fail"),
			slog.String("error", err.Error()),
		)
		return
	}

	slog.InfoContext(ctx, "periodic regeneration completed",
		slog.String("event", "job.refresh.done"),
		slog.String("run_id", resp.RunID),
		slog.Int("scheduled_count", resp.ScheduledCount),
	)
}
