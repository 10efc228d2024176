package repository

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

const (
	eventIndexKey = "reminder:events"

	scanBatchSize = 200
)

type scheduledEventIndex struct {
	client *redis.Client
}

// NewScheduledEventIndex stores sink keys in a single redis hash. Prefix
// lookups use HSCAN with a glob built from the escaped prefix.
func NewScheduledEventIndex(client *redis.Client) domain.ScheduledEventIndex {
	return &scheduledEventIndex{
		client: client,
	}
}

func (i *scheduledEventIndex) Add(ctx context.Context, sinkKey, taskName string) error {
	if sinkKey == "" {
		return ErrInvalidSinkKey
	}

	return i.client.HSet(ctx, eventIndexKey, sinkKey, taskName).Err()
}

func (i *scheduledEventIndex) ListByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	entries := make(map[string]string)
	match := escapeGlob(prefix) + "*"

	var cursor uint64
	for {
		kvs, next, err := i.client.HScan(ctx, eventIndexKey, cursor, match, scanBatchSize).Result()
		if err != nil {
			return nil, err
		}

		for n := 0; n+1 < len(kvs); n += 2 {
			entries[kvs[n]] = kvs[n+1]
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return entries, nil
}

func (i *scheduledEventIndex) Remove(ctx context.Context, sinkKeys ...string) error {
	if len(sinkKeys) == 0 {
		return nil
	}

	return i.client.HDel(ctx, eventIndexKey, sinkKeys...).Err()
}

var globReplacer = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
