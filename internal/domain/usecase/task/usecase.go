package task

import (
	"context"
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/model"
)

type UseCase interface {
	ListTasks(ctx context.Context) ([]entity.Task, error)
	// CreateTask returns nil without error when input is blank.
	CreateTask(ctx context.Context, input model.TaskInput) (*entity.Task, error)
	// CreateSubTask returns nil without error when input is blank, and
	// model.ErrTaskNotFound when taskID does not exist.
	CreateSubTask(ctx context.Context, taskID uint, input model.TaskInput) (*entity.SubTask, error)
	// DeleteTask is a no-op for an unknown id.
	DeleteTask(ctx context.Context, id uint) error
	// DeleteSubTask is a no-op for an unknown id.
	DeleteSubTask(ctx context.Context, id uint) error
	FindOverdue(ctx context.Context, now time.Time) ([]entity.Task, error)
}
