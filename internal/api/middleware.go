package api

import (
	"net/http"
	"time"

	"github.com/signalsfoundry/jamscope/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/signalsfoundry/jamscope/internal/api"
	requestIDHeader = "X-Request-Id"
)

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request-ID propagation, a server span,
// request logging, and HTTP metrics.
func (s *Server) instrument(name string, next http.HandlerFunc) http.Handler {
	tracer := otel.Tracer(tracerName)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if incoming := r.Header.Get(requestIDHeader); incoming != "" {
			ctx = logging.ContextWithRequestID(ctx, incoming)
		}
		ctx, reqID := logging.EnsureRequestID(ctx)
		w.Header().Set(requestIDHeader, reqID)

		ctx, span := tracer.Start(ctx, "api/"+name, trace.WithSpanKind(trace.SpanKindServer))
		span.SetAttributes(
			attribute.String("http.route", r.URL.Path),
			attribute.String("http.method", r.Method),
			attribute.String("request_id", reqID),
		)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r.WithContext(ctx))
		elapsed := time.Since(start)

		span.SetAttributes(attribute.Int("http.status_code", rec.status))
		s.metrics.ObserveHTTP(name, r.Method, rec.status, elapsed)
		s.log.Info(ctx, "request handled",
			logging.String("handler", name),
			logging.String("method", r.Method),
			logging.Int("status", rec.status),
			logging.String("request_id", reqID),
			logging.String("elapsed", elapsed.String()),
		)
	})
}
