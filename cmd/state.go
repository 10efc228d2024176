package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/config"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/health"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/sqlitestate"
)

type stateStore struct {
	refreshState domain.RefreshStateRepository
	eventIndex   domain.ScheduledEventIndex
	probe        health.Probe
	close        func() error
}

func initStateStore(ctx context.Context, cfg *config.Config) (*stateStore, error) {
	switch cfg.State.Store {
	case config.StateStoreSQLite:
		return initSQLiteStore(ctx, cfg.State)
	default:
		return initRedisStore(ctx, cfg.Redis)
	}
}

func initSQLiteStore(ctx context.Context, cfg *config.StateConfig) (*stateStore, error) {
	db, err := sqlitestate.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite state store: %w", err)
	}

	slog.InfoContext(ctx, "sqlite state store opened",
		slog.String("event", "sqlite.open"),
		slog.String("path", cfg.SQLitePath),
	)

	return &stateStore{
		refreshState: sqlitestate.NewRefreshStateRepository(db),
		eventIndex:   sqlitestate.NewScheduledEventIndex(db),
		probe:        health.SQLProbe("sqlite", db),
		close:        db.Close,
	}, nil
}

func initRedisStore(ctx context.Context, cfg *config.RedisConfig) (*stateStore, error) {
	redisClient := redis.NewClient(redisOptions(cfg))

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.ErrorContext(ctx, "failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.ErrorContext(ctx, "failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "redis connected",
		slog.String("addr", cfg.Addr),
	)

	return &stateStore{
		refreshState: repository.NewRefreshStateRepository(redisClient),
		eventIndex:   repository.NewScheduledEventIndex(redisClient),
		probe:        health.RedisProbe(redisClient),
		close:        redisClient.Close,
	}, nil
}

func redisOptions(cfg *config.RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}
