package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/model"
)

const taskOrder = "deadline ASC NULLS LAST, id ASC"

type GormTaskGateway struct {
	DB *gorm.DB
}

var _ TaskGateway = (*GormTaskGateway)(nil)

func NewGormTaskGateway(db *gorm.DB) *GormTaskGateway {
	return &GormTaskGateway{DB: db}
}

func (gateway *GormTaskGateway) FindAll(ctx context.Context) ([]entity.Task, error) {
	tasks := make([]entity.Task, 0)
	if err := gateway.DB.WithContext(ctx).Order(taskOrder).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	if err := gateway.attachSubTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (gateway *GormTaskGateway) FindOverdue(ctx context.Context, before time.Time) ([]entity.Task, error) {
	tasks := make([]entity.Task, 0)
	err := gateway.DB.WithContext(ctx).
		Where("deadline IS NOT NULL AND deadline < ?", before).
		Order(taskOrder).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("find overdue tasks: %w", err)
	}
	return tasks, nil
}

func (gateway *GormTaskGateway) Create(ctx context.Context, task entity.Task) (*entity.Task, error) {
	task.ID = 0
	task.SubTasks = nil
	if err := gateway.DB.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	task.SubTasks = []entity.SubTask{}
	return &task, nil
}

func (gateway *GormTaskGateway) CreateSubTask(ctx context.Context, subTask entity.SubTask) (*entity.SubTask, error) {
	subTask.ID = 0
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parents int64
		if err := tx.Model(&entity.Task{}).Where("id = ?", subTask.ParentID).Count(&parents).Error; err != nil {
			return err
		}
		if parents == 0 {
			return model.ErrTaskNotFound
		}
		return tx.Create(&subTask).Error
	})
	if errors.Is(err, model.ErrTaskNotFound) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return nil, model.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("create subtask for task %d: %w", subTask.ParentID, err)
	}
	return &subTask, nil
}

// DeleteByID removes the subtasks explicitly as well, so the cascade holds
// even on a schema created without the foreign key constraint.
func (gateway *GormTaskGateway) DeleteByID(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&entity.SubTask{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete task %d: %w", id, err)
	}
	return deleted, nil
}

func (gateway *GormTaskGateway) DeleteSubTaskByID(ctx context.Context, id uint) (*entity.SubTask, error) {
	var removed *entity.SubTask
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subTask entity.SubTask
		err := tx.First(&subTask, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&subTask).Error; err != nil {
			return err
		}
		removed = &subTask
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete subtask %d: %w", id, err)
	}
	return removed, nil
}

// attachSubTasks loads the subtasks of tasks in one query and assigns them
// in insertion order
func (gateway *GormTaskGateway) attachSubTasks(ctx context.Context, tasks []entity.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uint, len(tasks))
	byParent := make(map[uint]int, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
		byParent[tasks[i].ID] = i
		tasks[i].SubTasks = []entity.SubTask{}
	}

	var subTasks []entity.SubTask
	err := gateway.DB.WithContext(ctx).
		Where("parent_id IN ?", ids).
		Order("id ASC").
		Find(&subTasks).Error
	if err != nil {
		return fmt.Errorf("find subtasks: %w", err)
	}

	for _, subTask := range subTasks {
		if i, ok := byParent[subTask.ParentID]; ok {
			tasks[i].SubTasks = append(tasks[i].SubTasks, subTask)
		}
	}
	return nil
}
