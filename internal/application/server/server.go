package server

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"taskboard/internal/application/controller"
	"taskboard/internal/application/middleware"
	"taskboard/internal/application/report"
	"taskboard/internal/application/view"
	"taskboard/internal/domain/usecase/health"
	"taskboard/internal/domain/usecase/task"
)

type Options struct {
	// ContextPath prefixes every route, e.g. "/tasks". Empty mounts at the root.
	ContextPath string
	// RateLimit is skipped when nil
	RateLimit *middleware.RateLimitConfig

	TaskUseCase   task.UseCase
	HealthUseCase health.UseCase
	Exporter      *report.Exporter
}

// New builds the echo instance with middleware, rendering and every route.
func New(opts Options) (*echo.Echo, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	exporter := opts.Exporter
	if exporter == nil {
		exporter = report.NewExporter()
	}

	basePath := strings.TrimRight(opts.ContextPath, "/")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = view.NewHTTPErrorHandler(basePath)

	middleware.SetupRequestID(e)
	middleware.SetupRequestLogger(e)
	e.Use(echomw.Recover())
	if opts.RateLimit != nil {
		middleware.SetupRateLimiter(e, *opts.RateLimit)
	}

	api := e.Group(basePath)

	controller.NewTaskController(api, basePath, opts.TaskUseCase).InitTaskRoutes()
	controller.NewExportController(api, opts.TaskUseCase, exporter).InitExportRoutes()
	controller.NewHealthController(api, opts.HealthUseCase).InitHealthRoutes()

	return e, nil
}
