package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/regenerate"
)

type fakeRegenerator struct {
	mu       sync.Mutex
	triggers []regenerate.Trigger
	err      error
}

func (f *fakeRegenerator) RegenerateAll(_ context.Context, trigger regenerate.Trigger) (*regenerate.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.triggers = append(f.triggers, trigger)
	if f.err != nil {
		return nil, f.err
	}
	return &regenerate.Response{RunID: "run", Trigger: trigger}, nil
}

func (f *fakeRegenerator) calls() []regenerate.Trigger {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]regenerate.Trigger(nil), f.triggers...)
}

func TestNewRefreshJob_Schedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "default", schedule: ""},
		{name: "descriptor", schedule: "@every 6h"},
		{name: "standard cron", schedule: "0 3 * * *"},
		{name: "invalid", schedule: "every day", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRefreshJob(&fakeRegenerator{}, tt.schedule, time.UTC)
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRefreshJob_RunUsesPeriodicTrigger(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "success"},
		{name: "failure is logged", err: errors.New("source down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regen := &fakeRegenerator{err: tt.err}
			j, err := NewRefreshJob(regen, "", time.UTC)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			j.run()

			calls := regen.calls()
			if len(calls) != 1 || calls[0] != regenerate.TriggerPeriodic {
				t.Errorf("expected one periodic call, got %v", calls)
			}
		})
	}
}

func TestRefreshJob_StartStop(t *testing.T) {
	regen := &fakeRegenerator{}
	j, err := NewRefreshJob(regen, "@every 1s", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	j.Start(context.Background())
	if j.Next().IsZero() {
		t.Error("expected next run to be scheduled")
	}

	deadline := time.Now().Add(3 * time.Second)
	for len(regen.calls()) == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	j.Stop()

	if len(regen.calls()) == 0 {
		t.Error("expected the job to run at least once")
	}
}
