package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	regenerationMeterName = "regeneration.service"
)

type RegenerationMetrics struct {
	passes             metric.Int64Counter
	eventsProcessed    metric.Int64Counter
	remindersProcessed metric.Int64Counter
	passDuration       metric.Float64Histogram
	generateDuration   metric.Float64Histogram
}

func NewRegenerationMetrics() (*RegenerationMetrics, error) {
	meter := otel.Meter(regenerationMeterName)

	passes, err := meter.Int64Counter(
		"regeneration_passes_total",
		metric.WithDescription("Total number of regeneration passes"),
		metric.WithUnit("{pass}"),
	)
	if err != nil {
		return nil, err
	}

	eventsProcessed, err := meter.Int64Counter(
		"regeneration_events_total",
		metric.WithDescription("Total number of scheduled events by outcome"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	remindersProcessed, err := meter.Int64Counter(
		"regeneration_reminders_total",
		metric.WithDescription("Total number of reminders processed by outcome"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	passDuration, err := meter.Float64Histogram(
		"regeneration_pass_duration_seconds",
		metric.WithDescription("Full regeneration pass duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	generateDuration, err := meter.Float64Histogram(
		"regeneration_generate_duration_seconds",
		metric.WithDescription("Time spent generating the events of one reminder"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05,
		),
	)
	if err != nil {
		return nil, err
	}

	return &RegenerationMetrics{
		passes:             passes,
		eventsProcessed:    eventsProcessed,
		remindersProcessed: remindersProcessed,
		passDuration:       passDuration,
		generateDuration:   generateDuration,
	}, nil
}

func (m *RegenerationMetrics) RecordPass(ctx context.Context, trigger, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("trigger", trigger),
		attribute.String("outcome", outcome),
	)
	m.passes.Add(ctx, 1, attrs)
	m.passDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *RegenerationMetrics) RecordEvents(ctx context.Context, outcome string, count int) {
	if count <= 0 {
		return
	}
	m.eventsProcessed.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *RegenerationMetrics) RecordReminder(ctx context.Context, cadence, outcome string) {
	m.remindersProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cadence", cadence),
		attribute.String("outcome", outcome),
	))
}

func (m *RegenerationMetrics) RecordGenerateDuration(ctx context.Context, cadence string, duration time.Duration) {
	m.generateDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("cadence", cadence),
	))
}
