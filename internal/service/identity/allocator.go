package identity

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

const (
	// ReminderBuckets is the number of reminder id-space slices.
	ReminderBuckets = 10000
	// DayBuckets bounds the day component; unique within one reminder over 100 days x 4 windows.
	DayBuckets = 100
)

// Allocator maps an occurrence to a process-wide integer id.
type Allocator interface {
	Allocate(reminderID string, dayOffset int, w domain.Window) int64
}

type Scheme string

const (
	SchemeHash  Scheme = "hash"
	SchemeTable Scheme = "table"
)

// Factory builds the allocator for one regeneration pass.
type Factory func(reminderIDs []string) (Allocator, error)

func NewFactory(scheme Scheme) Factory {
	switch scheme {
	case SchemeTable:
		return func(reminderIDs []string) (Allocator, error) {
			return NewTableAllocator(reminderIDs)
		}
	default:
		return func(_ []string) (Allocator, error) {
			return NewHashAllocator(), nil
		}
	}
}

// StableHash is stable across processes and restarts.
func StableHash(reminderID string) uint64 {
	return xxhash.Sum64String(reminderID)
}

// HashAllocator derives the reminder bucket from StableHash. Two reminder
// ids landing in the same bucket mod ReminderBuckets will collide; callers
// with more than a handful of reminders should use TableAllocator.
type HashAllocator struct{}

func NewHashAllocator() *HashAllocator {
	return &HashAllocator{}
}

func (a *HashAllocator) Allocate(reminderID string, dayOffset int, w domain.Window) int64 {
	bucket := int64(StableHash(reminderID) % ReminderBuckets)
	return compose(bucket, dayOffset, w)
}

// TableAllocator reserves an explicit bucket per reminder of the pass.
// Buckets follow the sorted reminder ids, so the same reminder set always
// gets the same ids.
type TableAllocator struct {
	slots    map[string]int64
	fallback *HashAllocator
}

func NewTableAllocator(reminderIDs []string) (*TableAllocator, error) {
	ids := make([]string, 0, len(reminderIDs))
	seen := make(map[string]bool, len(reminderIDs))
	for _, id := range reminderIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	if len(ids) > ReminderBuckets {
		return nil, fmt.Errorf("identity: %d reminders exceed %d buckets", len(ids), ReminderBuckets)
	}

	sort.Strings(ids)

	slots := make(map[string]int64, len(ids))
	for i, id := range ids {
		slots[id] = int64(i)
	}

	return &TableAllocator{
		slots:    slots,
		fallback: NewHashAllocator(),
	}, nil
}

// Allocate falls back to the hash scheme for ids missing from the table.
func (a *TableAllocator) Allocate(reminderID string, dayOffset int, w domain.Window) int64 {
	bucket, ok := a.slots[reminderID]
	if !ok {
		return a.fallback.Allocate(reminderID, dayOffset, w)
	}
	return compose(bucket, dayOffset, w)
}

func compose(bucket int64, dayOffset int, w domain.Window) int64 {
	day := ((dayOffset % DayBuckets) + DayBuckets) % DayBuckets
	return bucket*1000 + int64(day)*10 + int64(w.Index())
}
