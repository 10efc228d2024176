package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/config"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/handler"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/health"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/clock"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/notifysink"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/random"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/regenrecorder"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/reminderfile"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/infra/remindermgmt"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/job"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/observability/middleware"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/identity"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/refresh"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/regenerate"
	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/window"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	regenMetrics, err := metrics.NewRegenerationMetrics()
	if err != nil {
		slog.Error("failed to initialize regeneration metrics", slog.String("error", err.Error()))
		return 1
	}

	// Pass recorder: InfluxDB for local, BigQuery for gcloud
	recorder, err := regenrecorder.NewRecorder(ctx, regenrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize regeneration recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close regeneration recorder", slog.String("error", err.Error()))
		}
	}()

	store, err := initStateStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize state store", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := store.close(); err != nil {
			slog.Warn("failed to close state store", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	sink := notifysink.NewSink(taskQueue, store.eventIndex)

	var source domain.ReminderSource
	if cfg.Source.UseFile() {
		source = reminderfile.NewSource(cfg.Source.File)
	} else {
		source = remindermgmt.NewClient(cfg.Source.URL)
	}

	resolver := window.NewResolver()
	regenService := regenerate.NewService(
		source,
		sink,
		store.refreshState,
		resolver,
		clock.NewSystemClock(cfg.Location),
		random.NewSource(cfg.Schedule.RandomSeed),
		refresh.NewPolicy(cfg.Refresh.StaleAfter),
		identity.NewFactory(cfg.Schedule.IdentityScheme),
		recorder,
		regenMetrics,
		regenerate.Options{
			HorizonDays:         cfg.Schedule.HorizonDays,
			MaxEvents:           cfg.Schedule.MaxEvents,
			SafetyBuffer:        cfg.Schedule.SafetyBuffer,
			DispatchConcurrency: cfg.Schedule.DispatchConcurrency,
		},
	)

	if cfg.Source.UseFile() {
		watcher, err := reminderfile.NewWatcher(cfg.Source.File, reminderfile.DefaultDebounce, func(ctx context.Context) {
			if _, err := regenService.RegenerateAll(ctx, regenerate.TriggerReminderChange); err != nil {
				slog.ErrorContext(ctx, "regeneration after reminder change failed", slog.String("error", err.Error()))
			}
		})
		if err != nil {
			slog.Error("failed to watch reminders file", slog.String("error", err.Error()))
			return 1
		}
		defer func() {
			if err := watcher.Close(); err != nil {
				slog.Warn("failed to close reminders file watcher", slog.String("error", err.Error()))
			}
		}()
		go watcher.Run(ctx)
	}

	refreshJob, err := job.NewRefreshJob(regenService, cfg.Refresh.Cron, cfg.Location)
	if err != nil {
		slog.Error("failed to create refresh job", slog.String("error", err.Error()))
		return 1
	}
	refreshJob.Start(ctx)
	defer refreshJob.Stop()

	if cfg.Refresh.OnBoot {
		go func() {
			if _, _, err := regenService.RefreshIfDue(ctx, regenerate.TriggerBoot); err != nil {
				slog.ErrorContext(ctx, "boot refresh failed", slog.String("error", err.Error()))
			}
		}()
	}

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     logging.Module("mindfulness-reminder"),
		Worker:     false,
		TracerName: "github.com/KasumiMercury/primind-mindfulness-reminder/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if trigger := c.Query("trigger"); trigger != "" {
				return trigger
			}
			return c.Request.URL.Path
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version, store.probe)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())
	healthChecker.RegisterGRPC(r)

	handler.NewRegenerationHandler(regenService).Register(r.Group("/api/v1"))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h2c.NewHandler(r, &http2.Server{}),
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("timezone", cfg.Location.String()),
			slog.Int("horizon_days", cfg.Schedule.HorizonDays),
			slog.Int("max_events", cfg.Schedule.MaxEvents),
			slog.String("state_store", string(cfg.State.Store)),
			slog.String("refresh_cron", cfg.Refresh.Cron),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
