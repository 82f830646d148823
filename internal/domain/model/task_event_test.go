package model

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain/entity"
	"taskboard/pkg/util/dateutils"
)

func TestTaskEvents(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	deadline, _ := dateutils.ParseDate("2024-03-05")

	created := NewTaskCreatedEvent(entity.Task{ID: 4, Content: "ship", Deadline: deadline}, now)
	if created.Type != TaskCreated || created.TaskID != 4 || created.Content != "ship" || created.Deadline != "2024-03-05" {
		t.Errorf("unexpected created event %+v", created)
	}
	if _, err := uuid.Parse(created.ID); err != nil {
		t.Errorf("expected a uuid event id, got %q", created.ID)
	}
	if created.OccurredAt.Location() != time.UTC || !created.OccurredAt.Equal(now) {
		t.Errorf("expected UTC timestamp equal to now, got %v", created.OccurredAt)
	}

	sub := NewSubTaskCreatedEvent(entity.SubTask{ID: 9, ParentID: 4, Content: "test"}, now)
	if sub.Type != SubTaskCreated || sub.TaskID != 4 || sub.SubTaskID != 9 || sub.Deadline != "" {
		t.Errorf("unexpected subtask event %+v", sub)
	}

	if e := NewTaskDeletedEvent(4, now); e.Type != TaskDeleted || e.TaskID != 4 {
		t.Errorf("unexpected deleted event %+v", e)
	}
	if e := NewSubTaskDeletedEvent(entity.SubTask{ID: 9, ParentID: 4}, now); e.Type != SubTaskDeleted || e.SubTaskID != 9 {
		t.Errorf("unexpected subtask deleted event %+v", e)
	}
}

func TestTaskListViewIsOverdue(t *testing.T) {
	view := TaskListView{Today: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	yesterday, _ := dateutils.ParseDate("2024-02-29")
	today, _ := dateutils.ParseDate("2024-03-01")

	if !view.IsOverdue(yesterday) {
		t.Error("expected yesterday to be overdue")
	}
	if view.IsOverdue(today) || view.IsOverdue(nil) {
		t.Error("expected today and no deadline not to be overdue")
	}
}
