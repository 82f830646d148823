package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard/internal/application/view"
	"taskboard/internal/domain/model"
	"taskboard/internal/domain/usecase/task"
	"taskboard/pkg/msg"
	"taskboard/pkg/util/dateutils"
	"taskboard/pkg/util/numberutils"
)

type TaskController struct {
	api      *echo.Group
	basePath string
	useCase  task.UseCase
	now      func() time.Time
}

func NewTaskController(api *echo.Group, basePath string, useCase task.UseCase) *TaskController {
	return &TaskController{api: api, basePath: basePath, useCase: useCase, now: time.Now}
}

// InitTaskRoutes initializes the task pages and form actions
func (controller *TaskController) InitTaskRoutes() {
	controller.api.GET("/", controller.List)
	if controller.basePath != "" {
		// the bare context path, e.g. /tasks next to /tasks/
		controller.api.GET("", controller.List)
	}
	controller.api.GET("/add", controller.AddForm)
	controller.api.POST("/add", controller.Create)
	controller.api.POST("/add_subtask/:task_id", controller.CreateSubTask)
	controller.api.GET("/delete/:task_id", controller.Delete)
	controller.api.GET("/delete_subtask/:subtask_id", controller.DeleteSubTask)
}

func (controller *TaskController) List(c echo.Context) error {
	tasks, err := controller.useCase.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.IndexPage, model.TaskListView{
		BasePath: controller.basePath,
		Tasks:    tasks,
		Today:    dateutils.Today(controller.now()),
	})
}

func (controller *TaskController) AddForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.AddPage, model.FormView{BasePath: controller.basePath})
}

func (controller *TaskController) Create(c echo.Context) error {
	var form model.TaskForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	input, err := form.Decode()
	if err != nil {
		return err
	}

	if _, err := controller.useCase.CreateTask(c.Request().Context(), input); err != nil {
		return err
	}
	return controller.redirectToList(c, http.StatusSeeOther)
}

func (controller *TaskController) CreateSubTask(c echo.Context) error {
	taskID, err := pathID(c, "task_id")
	if err != nil {
		return err
	}

	var form model.SubTaskForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	input, err := form.Decode()
	if err != nil {
		return err
	}

	_, err = controller.useCase.CreateSubTask(c.Request().Context(), taskID, input)
	if errors.Is(err, model.ErrTaskNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msg.GetMessage("task.error.not-found", taskID)).SetInternal(err)
	}
	if err != nil {
		return err
	}
	return controller.redirectToList(c, http.StatusSeeOther)
}

func (controller *TaskController) Delete(c echo.Context) error {
	taskID, err := pathID(c, "task_id")
	if err != nil {
		return err
	}
	if err := controller.useCase.DeleteTask(c.Request().Context(), taskID); err != nil {
		return err
	}
	return controller.redirectToList(c, http.StatusFound)
}

func (controller *TaskController) DeleteSubTask(c echo.Context) error {
	subTaskID, err := pathID(c, "subtask_id")
	if err != nil {
		return err
	}
	if err := controller.useCase.DeleteSubTask(c.Request().Context(), subTaskID); err != nil {
		return err
	}
	return controller.redirectToList(c, http.StatusFound)
}

func (controller *TaskController) redirectToList(c echo.Context, status int) error {
	return c.Redirect(status, controller.basePath+"/")
}

// pathID only accepts non-negative integers; anything else is not a route
func pathID(c echo.Context, name string) (uint, error) {
	id, err := numberutils.ToUintWithError(c.Param(name))
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return id, nil
}
