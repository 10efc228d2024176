package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module names the component that emitted a log record.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	ServiceInfo   ServiceInfo
	Environment   Environment
	GCPProjectID  string
	DefaultModule Module
	Writer        io.Writer
}

type moduleKey struct{}

func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey{}, module)
}

func ModuleFromContext(ctx context.Context) (Module, bool) {
	m, ok := ctx.Value(moduleKey{}).(Module)
	return m, ok && m != ""
}

// NewLogger builds the JSON logger used by every service process.
func NewLogger(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	level := slog.LevelInfo
	if cfg.Environment == EnvDev {
		level = slog.LevelDebug
	}

	inner := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: platformReplaceAttr,
	})

	h := &Handler{
		inner:         inner,
		projectID:     cfg.GCPProjectID,
		defaultModule: cfg.DefaultModule,
	}

	return slog.New(h).With(
		slog.Group("service",
			slog.String("name", cfg.ServiceInfo.Name),
			slog.String("version", cfg.ServiceInfo.Version),
			slog.String("revision", cfg.ServiceInfo.Revision),
		),
		slog.String("env", string(cfg.Environment)),
	)
}

// Handler decorates records with request, module and trace correlation.
type Handler struct {
	inner         slog.Handler
	projectID     string
	defaultModule Module
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	module := h.defaultModule
	if m, ok := ModuleFromContext(ctx); ok {
		module = m
	}
	if module != "" {
		r.AddAttrs(slog.String("module", string(module)))
	}

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	r.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)

	return h.inner.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		inner:         h.inner.WithAttrs(attrs),
		projectID:     h.projectID,
		defaultModule: h.defaultModule,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		inner:         h.inner.WithGroup(name),
		projectID:     h.projectID,
		defaultModule: h.defaultModule,
	}
}
