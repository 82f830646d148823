package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/gateway/cache"
	"taskboard/internal/domain/gateway/db"
	"taskboard/internal/domain/gateway/queue"
	"taskboard/internal/domain/model"
	"taskboard/pkg/log"
	"taskboard/pkg/msg"
	"taskboard/pkg/util/dateutils"
)

type taskUseCase struct {
	gateway db.TaskGateway
	cache   cache.TaskListCache
	events  queue.TaskEventGateway
	now     func() time.Time
}

// NewTaskUseCase wires the task operations. A nil cache or events gateway
// is replaced by its no-op implementation.
func NewTaskUseCase(gateway db.TaskGateway, listCache cache.TaskListCache, events queue.TaskEventGateway) UseCase {
	if listCache == nil {
		listCache = cache.NoopTaskListCache{}
	}
	if events == nil {
		events = queue.NoopTaskEventGateway{}
	}
	return &taskUseCase{
		gateway: gateway,
		cache:   listCache,
		events:  events,
		now:     time.Now,
	}
}

// ListTasks serves the cached list when there is one. The cache version is
// read before the database so that a write committed in between makes the
// fill below a no-op.
func (uc *taskUseCase) ListTasks(ctx context.Context) ([]entity.Task, error) {
	entry, cacheErr := uc.cache.Get(ctx)
	if cacheErr != nil {
		log.Warn(msg.GetMessage("cache.read-failed"), zap.Error(cacheErr))
	}
	if entry.Hit {
		return entry.Tasks, nil
	}

	tasks, err := uc.gateway.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if cacheErr == nil {
		if err := uc.cache.Set(ctx, entry.Version, tasks); err != nil {
			log.Warn(msg.GetMessage("cache.write-failed"), zap.Error(err))
		}
	}
	return tasks, nil
}

func (uc *taskUseCase) CreateTask(ctx context.Context, input model.TaskInput) (*entity.Task, error) {
	if input.IsBlank() {
		log.Info(msg.GetMessage("task.ignored-blank", "task"))
		return nil, nil
	}

	created, err := uc.gateway.Create(ctx, entity.Task{
		Content:  input.Content,
		Deadline: input.Deadline,
	})
	if err != nil {
		return nil, err
	}

	log.Info(msg.GetMessage("task.created", created.ID),
		zap.Uint("task_id", created.ID),
		zap.String("deadline", dateutils.FormatDate(created.Deadline)))
	uc.afterWrite(ctx, model.NewTaskCreatedEvent(*created, uc.now()))
	return created, nil
}

func (uc *taskUseCase) CreateSubTask(ctx context.Context, taskID uint, input model.TaskInput) (*entity.SubTask, error) {
	if input.IsBlank() {
		log.Info(msg.GetMessage("task.ignored-blank", "subtask"), zap.Uint("task_id", taskID))
		return nil, nil
	}

	created, err := uc.gateway.CreateSubTask(ctx, entity.SubTask{
		Content:  input.Content,
		Deadline: input.Deadline,
		ParentID: taskID,
	})
	if err != nil {
		return nil, err
	}

	log.Info(msg.GetMessage("task.subtask-created", created.ID, taskID),
		zap.Uint("task_id", taskID),
		zap.Uint("subtask_id", created.ID))
	uc.afterWrite(ctx, model.NewSubTaskCreatedEvent(*created, uc.now()))
	return created, nil
}

func (uc *taskUseCase) DeleteTask(ctx context.Context, id uint) error {
	deleted, err := uc.gateway.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Info(msg.GetMessage("task.delete-missing", "task", id))
		return nil
	}

	log.Info(msg.GetMessage("task.deleted", id), zap.Uint("task_id", id))
	uc.afterWrite(ctx, model.NewTaskDeletedEvent(id, uc.now()))
	return nil
}

func (uc *taskUseCase) DeleteSubTask(ctx context.Context, id uint) error {
	removed, err := uc.gateway.DeleteSubTaskByID(ctx, id)
	if err != nil {
		return err
	}
	if removed == nil {
		log.Info(msg.GetMessage("task.delete-missing", "subtask", id))
		return nil
	}

	log.Info(msg.GetMessage("task.subtask-deleted", id), zap.Uint("subtask_id", id))
	uc.afterWrite(ctx, model.NewSubTaskDeletedEvent(*removed, uc.now()))
	return nil
}

func (uc *taskUseCase) FindOverdue(ctx context.Context, now time.Time) ([]entity.Task, error) {
	return uc.gateway.FindOverdue(ctx, dateutils.Today(now))
}

// afterWrite runs once a change is committed; neither step can fail the request
func (uc *taskUseCase) afterWrite(ctx context.Context, event model.TaskEvent) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		log.Warn(msg.GetMessage("cache.invalidate-failed"), zap.Error(err))
	}
	if err := uc.events.Publish(ctx, event); err != nil {
		log.Warn(msg.GetMessage("events.publish-failed", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}
