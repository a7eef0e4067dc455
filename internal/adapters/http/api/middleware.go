package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/flightdesk/pkg/logger"
	"github.com/okian/flightdesk/pkg/metrics"
)

// instrument wraps a handler with request metrics and panic recovery.
// A panicking handler is answered with 500 and logged with its endpoint.
func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(r.Context(), "handler panic",
					logger.String("endpoint", endpoint),
					logger.String("method", r.Method),
					logger.Any("panic", p),
				)
				metrics.RecordErrorByComponent("http", "panic")
				if !rec.wroteHeader {
					writeError(rec, http.StatusInternalServerError, "internal_error", fmt.Errorf("%v", p))
				}
			}
			observe(endpoint, r.Method, rec.status, time.Since(start))
		}()

		next(rec, r)
	}
}

// observe records the outcome of one request.
func observe(endpoint, method string, status int, elapsed time.Duration) {
	ms := float64(elapsed.Microseconds()) / 1000
	code := strconv.Itoa(status)
	metrics.RecordHTTPRequest(endpoint, method, code)
	metrics.RecordHTTPRequestDuration(endpoint, method, code, ms)
	if status < http.StatusBadRequest {
		return
	}
	kind, severity := classify(status)
	metrics.RecordErrorByEndpoint(endpoint, method, kind)
	metrics.RecordErrorByType(kind, severity)
	metrics.RecordErrorLatency("http", kind, ms)
}

// classify buckets an error status into a metric label and severity.
func classify(status int) (kind, severity string) {
	switch {
	case status == http.StatusServiceUnavailable:
		return "unavailable", "high"
	case status >= http.StatusInternalServerError:
		return "server_error", "high"
	case status == http.StatusNotFound:
		return "not_found", "low"
	default:
		return "client_error", "medium"
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.status = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}
