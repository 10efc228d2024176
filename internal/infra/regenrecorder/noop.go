package regenrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.RegenerationRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordRegeneration(_ context.Context, _ domain.RegenerationRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
