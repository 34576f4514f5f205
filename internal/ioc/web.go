package ioc

import (
	"coursemanagement/internal/client"
	"coursemanagement/internal/config"
	"coursemanagement/internal/pkg/httpx"
	"coursemanagement/internal/pkg/logger"
	"coursemanagement/internal/web"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func InitAPIClient(cfg *config.Config) *client.Client {
	return client.New(cfg.Web.APIBaseURL, cfg.Web.Timeout)
}

func InitWebServer(cfg *config.Config, h *web.Handler, l logger.Logger) *httpx.Server {
	r := mux.NewRouter()
	r.Use(accessLog(l))
	h.RegisterRoutes(r)
	return &httpx.Server{
		Name:    "web",
		Addr:    cfg.Web.Addr,
		Handler: handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{l}))(r),
		L:       l,
	}
}
