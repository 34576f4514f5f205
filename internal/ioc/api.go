package ioc

import (
	"context"
	"net/http"

	"coursemanagement/internal/config"
	"coursemanagement/internal/handler"
	"coursemanagement/internal/middleware"
	"coursemanagement/internal/pkg/httpx"
	"coursemanagement/internal/pkg/logger"
	"coursemanagement/internal/scheduler"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App is everything the api command runs.
type App struct {
	Server    *httpx.Server
	Scheduler *scheduler.Scheduler
}

func InitAPIServer(cfg *config.Config, l logger.Logger,
	imp *handler.ImportHandler, progress *handler.ProgressHandler, export *handler.ExportHandler,
	course *handler.CourseHandler, student *handler.StudentHandler, mark *handler.MarkHandler) *httpx.Server {
	r := mux.NewRouter()
	r.Use(accessLog(l), middleware.Metrics)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handler.Health).Methods(http.MethodGet)

	// Fixed paths under /students go first so {id} does not swallow them.
	api := r.PathPrefix("/api").Subrouter()
	imp.RegisterRoutes(api)
	progress.RegisterRoutes(api)
	export.RegisterRoutes(api)
	course.RegisterRoutes(api)
	student.RegisterRoutes(api)
	mark.RegisterRoutes(api)

	h := handlers.CORS(
		handlers.AllowedOrigins(cfg.HTTP.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(r)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{l}))(h)

	return &httpx.Server{Name: "api", Addr: cfg.HTTP.Addr, Handler: h, L: l}
}

func accessLog(l logger.Logger) func(http.Handler) http.Handler {
	return middleware.NewLogMiddlewareBuilder(func(ctx context.Context, al middleware.AccessLog) {
		l.Info("request",
			logger.String("request_id", al.RequestID),
			logger.String("method", al.Method),
			logger.String("path", al.Path),
			logger.Int("status", al.Status),
			logger.Duration("duration", al.Duration),
		)
	}).Build()
}

// recoveryLogger routes panics caught by the recovery handler into l.
type recoveryLogger struct {
	l logger.Logger
}

func (r recoveryLogger) Println(args ...interface{}) {
	r.l.Error("recovered from panic", logger.Any("panic", args))
}
