package view

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"taskboard/internal/domain/model"
	"taskboard/pkg/log"
	"taskboard/pkg/msg"
)

// NewHTTPErrorHandler renders every error on the error page. Client errors
// carry their message; anything else is logged and shown as a generic 500.
func NewHTTPErrorHandler(basePath string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		view := toErrorView(err)
		view.BasePath = basePath

		if view.Status >= http.StatusInternalServerError {
			log.Error(msg.GetMessage("app.error.internal"),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err))
		}

		var renderErr error
		if c.Request().Method == http.MethodHead {
			renderErr = c.NoContent(view.Status)
		} else {
			renderErr = c.Render(view.Status, ErrorPage, view)
		}
		if renderErr != nil {
			log.Error(msg.GetMessage("app.error.internal"), zap.Error(renderErr))
		}
	}
}

func toErrorView(err error) model.ErrorView {
	var validationErr *model.ValidationError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		return errorView(http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, model.ErrTaskNotFound):
		return errorView(http.StatusNotFound, msg.GetMessage("app.error.not-found"))
	case errors.As(err, &httpErr):
		if httpErr.Code >= http.StatusInternalServerError {
			return errorView(httpErr.Code, msg.GetMessage("app.error.internal"))
		}
		message, _ := httpErr.Message.(string)
		if message == "" || message == http.StatusText(httpErr.Code) {
			message = http.StatusText(httpErr.Code)
			if httpErr.Code == http.StatusNotFound {
				message = msg.GetMessage("app.error.not-found")
			}
		}
		return errorView(httpErr.Code, message)
	default:
		return errorView(http.StatusInternalServerError, msg.GetMessage("app.error.internal"))
	}
}

func errorView(status int, message string) model.ErrorView {
	return model.ErrorView{
		Status:  status,
		Title:   http.StatusText(status),
		Message: message,
	}
}
