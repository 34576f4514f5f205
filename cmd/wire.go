//go:build wireinject

package main

import (
	"coursemanagement/internal/client"
	"coursemanagement/internal/config"
	"coursemanagement/internal/handler"
	"coursemanagement/internal/ioc"
	"coursemanagement/internal/pkg/httpx"
	"coursemanagement/internal/scheduler"
	"coursemanagement/internal/service"
	"coursemanagement/internal/web"

	"github.com/google/wire"
)

var importSet = wire.NewSet(
	ioc.InitLogger,
	ioc.InitDB,
	ioc.InitRedis,
	ioc.InitProgressStore,
	ioc.InitImportService,
)

func InitAPIApp(cfg *config.Config) (*ioc.App, error) {
	wire.Build(
		importSet,
		service.NewCourseService,
		service.NewStudentService,
		service.NewMarkService,
		wire.Bind(new(handler.CourseService), new(*service.CourseService)),
		wire.Bind(new(handler.StudentService), new(*service.StudentService)),
		wire.Bind(new(handler.MarkService), new(*service.MarkService)),
		wire.Bind(new(handler.Importer), new(*service.ImportService)),
		wire.Bind(new(handler.ProgressReporter), new(*service.ImportService)),
		wire.Bind(new(scheduler.Pruner), new(*service.ImportService)),

		ioc.InitImportHandler,
		handler.NewProgressHandler,
		handler.NewExportHandler,
		handler.NewCourseHandler,
		handler.NewStudentHandler,
		handler.NewMarkHandler,
		ioc.InitAPIServer,
		ioc.InitScheduler,
		wire.Struct(new(ioc.App), "*"),
	)
	return nil, nil
}

func InitWebServer(cfg *config.Config) (*httpx.Server, error) {
	wire.Build(
		ioc.InitLogger,
		ioc.InitAPIClient,
		wire.Bind(new(web.API), new(*client.Client)),
		web.NewHandler,
		ioc.InitWebServer,
	)
	return nil, nil
}

func InitImportService(cfg *config.Config) (*service.ImportService, error) {
	wire.Build(importSet)
	return nil, nil
}
