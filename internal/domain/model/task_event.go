package model

import (
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain/entity"
	"taskboard/pkg/util/dateutils"
)

// TaskEventType names what happened to a task or subtask.
type TaskEventType string

const (
	TaskCreated    TaskEventType = "task.created"
	TaskDeleted    TaskEventType = "task.deleted"
	SubTaskCreated TaskEventType = "subtask.created"
	SubTaskDeleted TaskEventType = "subtask.deleted"
)

// TaskEvent is published after a change has been committed.
type TaskEvent struct {
	ID         string        `json:"id"`
	Type       TaskEventType `json:"type"`
	TaskID     uint          `json:"taskId"`
	SubTaskID  uint          `json:"subTaskId,omitempty"`
	Content    string        `json:"content,omitempty"`
	Deadline   string        `json:"deadline,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

func newTaskEvent(eventType TaskEventType, now time.Time) TaskEvent {
	return TaskEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: now.UTC(),
	}
}

func NewTaskCreatedEvent(task entity.Task, now time.Time) TaskEvent {
	event := newTaskEvent(TaskCreated, now)
	event.TaskID = task.ID
	event.Content = task.Content
	event.Deadline = dateutils.FormatDate(task.Deadline)
	return event
}

func NewTaskDeletedEvent(taskID uint, now time.Time) TaskEvent {
	event := newTaskEvent(TaskDeleted, now)
	event.TaskID = taskID
	return event
}

func NewSubTaskCreatedEvent(subTask entity.SubTask, now time.Time) TaskEvent {
	event := newTaskEvent(SubTaskCreated, now)
	event.TaskID = subTask.ParentID
	event.SubTaskID = subTask.ID
	event.Content = subTask.Content
	event.Deadline = dateutils.FormatDate(subTask.Deadline)
	return event
}

func NewSubTaskDeletedEvent(subTask entity.SubTask, now time.Time) TaskEvent {
	event := newTaskEvent(SubTaskDeleted, now)
	event.TaskID = subTask.ParentID
	event.SubTaskID = subTask.ID
	return event
}
