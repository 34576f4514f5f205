package middleware

import (
	"net/http"
	"strconv"

	"coursemanagement/internal/metrics"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
)

// Metrics records request counts and latencies labelled by the route
// template, so /api/courses/1 and /api/courses/2 share a series.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		m := httpsnoop.CaptureMetrics(next, w, r)
		metrics.RequestCount.WithLabelValues(r.Method, route, strconv.Itoa(m.Code)).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(m.Duration.Seconds())
	})
}
