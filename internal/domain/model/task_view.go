package model

import (
	"time"

	"taskboard/internal/domain/entity"
)

// TaskListView is the data behind the list page.
type TaskListView struct {
	BasePath string
	Tasks    []entity.Task
	Today    time.Time
}

// IsOverdue reports whether deadline is strictly before the view's day.
func (view TaskListView) IsOverdue(deadline *time.Time) bool {
	return deadline != nil && deadline.Before(view.Today)
}

// FormView is the data behind the add page.
type FormView struct {
	BasePath string
}

// ErrorView is the data behind the error page.
type ErrorView struct {
	BasePath string
	Status   int
	Title    string
	Message  string
}
