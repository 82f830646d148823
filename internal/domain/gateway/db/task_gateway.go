package db

import (
	"context"
	"time"

	"taskboard/internal/domain/entity"
)

type TaskGateway interface {
	// FindAll returns every task ordered by deadline, missing deadlines last,
	// each with its subtasks in insertion order.
	FindAll(ctx context.Context) ([]entity.Task, error)
	// FindOverdue returns tasks whose deadline is strictly before the given day.
	FindOverdue(ctx context.Context, before time.Time) ([]entity.Task, error)

	Create(ctx context.Context, task entity.Task) (*entity.Task, error)
	// CreateSubTask returns model.ErrTaskNotFound when the parent is missing.
	CreateSubTask(ctx context.Context, subTask entity.SubTask) (*entity.SubTask, error)

	// DeleteByID removes a task and its subtasks; false means nothing matched.
	DeleteByID(ctx context.Context, id uint) (bool, error)
	// DeleteSubTaskByID returns the removed subtask, or nil if nothing matched.
	DeleteSubTaskByID(ctx context.Context, id uint) (*entity.SubTask, error)
}
