package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type LogMiddlewareBuilder struct {
	logFn func(ctx context.Context, l AccessLog)
}

func NewLogMiddlewareBuilder(logFn func(ctx context.Context, l AccessLog)) *LogMiddlewareBuilder {
	return &LogMiddlewareBuilder{logFn: logFn}
}

type AccessLog struct {
	RequestID string        `json:"request_id"`
	Path      string        `json:"path"`
	Method    string        `json:"method"`
	Status    int           `json:"status"`
	Duration  time.Duration `json:"duration"`
}

type requestIDKey struct{}

// RequestID returns the id the log middleware assigned to the request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Build returns a mux middleware. An incoming X-Request-ID is reused,
// otherwise a new one is generated and echoed in the response.
func (m *LogMiddlewareBuilder) Build() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if len(path) > 1024 {
				path = path[:1024]
			}
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))

			metrics := httpsnoop.CaptureMetrics(next, w, r)
			m.logFn(r.Context(), AccessLog{
				RequestID: id,
				Path:      path,
				Method:    r.Method,
				Status:    metrics.Code,
				Duration:  metrics.Duration,
			})
		})
	}
}
