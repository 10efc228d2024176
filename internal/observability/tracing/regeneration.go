package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const regenerationTracerName = "github.com/KasumiMercury/primind-mindfulness-reminder/internal/service/regenerate"

func RegenerationTracer() trace.Tracer {
	return otel.Tracer(regenerationTracerName)
}

func StartRegenerationSpan(ctx context.Context, trigger, runID string) (context.Context, trace.Span) {
	return RegenerationTracer().Start(ctx, "regeneration.pass",
		trace.WithAttributes(
			attribute.String("regeneration.trigger", trigger),
			attribute.String("regeneration.run_id", runID),
		),
	)
}

func StartGenerateSpan(ctx context.Context, reminderID, cadence string) (context.Context, trace.Span) {
	return RegenerationTracer().Start(ctx, "regeneration.generate",
		trace.WithAttributes(
			attribute.String("reminder_id", reminderID),
			attribute.String("cadence", cadence),
		),
	)
}

func StartDispatchSpan(ctx context.Context, reminderID string, eventCount int) (context.Context, trace.Span) {
	return RegenerationTracer().Start(ctx, "regeneration.dispatch",
		trace.WithAttributes(
			attribute.String("reminder_id", reminderID),
			attribute.Int("dispatch.event_count", eventCount),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return RegenerationTracer().Start(ctx, "regeneration.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordRegenerationResult(span trace.Span, reminderCount, scheduledCount, failedCount, skippedCount, rejectedCount int, err error) {
	span.SetAttributes(
		attribute.Int("regeneration.reminder_count", reminderCount),
		attribute.Int("regeneration.scheduled_count", scheduledCount),
		attribute.Int("regeneration.failed_count", failedCount),
		attribute.Int("regeneration.skipped_count", skippedCount),
		attribute.Int("regeneration.rejected_count", rejectedCount),
	)
	RecordError(span, err)
}

func RecordGenerateResult(span trace.Span, eventCount, skippedCount int, truncated bool, err error) {
	span.SetAttributes(
		attribute.Int("generate.event_count", eventCount),
		attribute.Int("generate.skipped_count", skippedCount),
		attribute.Bool("generate.truncated", truncated),
	)
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// InjectToHTTPRequest writes the current trace context into outgoing headers.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
