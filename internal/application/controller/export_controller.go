package controller

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/application/report"
	"taskboard/internal/domain/usecase/task"
)

type ExportController struct {
	api      *echo.Group
	useCase  task.UseCase
	exporter *report.Exporter
}

func NewExportController(api *echo.Group, useCase task.UseCase, exporter *report.Exporter) *ExportController {
	return &ExportController{api: api, useCase: useCase, exporter: exporter}
}

func (controller *ExportController) InitExportRoutes() {
	controller.api.GET("/export", controller.Export)
}

// Export sends the ordered task list as csv, pdf or json.
func (controller *ExportController) Export(c echo.Context) error {
	format, err := report.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return err
	}

	tasks, err := controller.useCase.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}

	doc, err := controller.exporter.Export(tasks, format)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Body)
}
