package restapi

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"trajetviz.dev/internal/logging"
	"trajetviz.dev/internal/metrics"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Ids from callers are kept when short and free of characters that could
// break a log line.
var callerRequestID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// RequestID returns the id ObserveRequests gave the request, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder remembers what a handler sent.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// ObserveRequests gives every request an id, a logger carrying it, one
// http_request log line and, when m is set, a count and latency sample
// labelled with the route pattern that served it.
func ObserveRequests(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(RequestIDHeader)
			if !callerRequestID.MatchString(id) {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			reqLogger := logger.With(slog.String("request_id", id))
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			r = r.WithContext(logging.WithLogger(ctx, reqLogger))

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			// The mux fills in r.Pattern on the request it was handed.
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			elapsed := time.Since(start)

			if m != nil {
				m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.code())).Inc()
				m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
			}

			logging.LogHTTPRequest(reqLogger, r.Method, r.URL.Path, rec.code(),
				float64(elapsed.Microseconds())/1000,
				slog.String("route", route),
				slog.Int("bytes", rec.bytes),
				slog.String("user_agent", r.UserAgent()))
		})
	}
}

// WrapServer puts the shared middleware around the server's root handler.
func (api *RestAPI) WrapServer(root http.Handler) http.Handler {
	return ObserveRequests(api.Logger, api.Metrics)(CompressionMiddleware(root))
}

// logger returns the request scoped logger when the request went through
// ObserveRequests.
func (api *RestAPI) logger(r *http.Request) *slog.Logger {
	if RequestID(r.Context()) == "" {
		return api.Logger
	}
	return logging.FromContext(r.Context())
}
