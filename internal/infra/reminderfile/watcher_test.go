package reminderfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reminders.yaml")
	if err := os.WriteFile(path, []byte("reminders: []\n"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	changed := make(chan struct{}, 4)
	w, err := NewWatcher(path, 100*time.Millisecond, func(context.Context) {
		changed <- struct{}{}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("expected change notification")
	}

	select {
	case <-changed:
		t.Error("expected rapid writes to be debounced into one notification")
	case <-time.After(400 * time.Millisecond):
	}
}
