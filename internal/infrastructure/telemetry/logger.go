package telemetry

import (
	"context"
	"io"
	"log/slog"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/catalog-filter/internal/infrastructure/config"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const httpRouteKey contextKey = "http.route"

// WithHTTPRoute stores the matched route pattern for log correlation
func WithHTTPRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, httpRouteKey, route)
}

// HTTPRouteFromContext returns the route stored by WithHTTPRoute, or ""
func HTTPRouteFromContext(ctx context.Context) string {
	route, _ := ctx.Value(httpRouteKey).(string)
	return route
}

// correlationHandler decorates records with whatever request correlation
// the context carries: trace_id, span_id, request_id and http.route.
type correlationHandler struct {
	next slog.Handler
}

func (h *correlationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *correlationHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
		r.AddAttrs(slog.String("request_id", reqID))
	}
	if route := HTTPRouteFromContext(ctx); route != "" {
		r.AddAttrs(slog.String("http.route", route))
	}
	return h.next.Handle(ctx, r)
}

func (h *correlationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &correlationHandler{next: h.next.WithAttrs(attrs)}
}

func (h *correlationHandler) WithGroup(name string) slog.Handler {
	return &correlationHandler{next: h.next.WithGroup(name)}
}

// newLogger builds the JSON logger shared by every component
func newLogger(cfg *config.OTLPConfig, w io.Writer) *slog.Logger {
	handler := &correlationHandler{
		next: slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}

	return slog.New(handler).With(
		slog.String("service.name", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}
