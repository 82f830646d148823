package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"taskboard/internal/domain/entity"
	"taskboard/pkg/msg"
	"taskboard/pkg/util/dateutils"
)

// TaskForm is the body of POST /add.
type TaskForm struct {
	Content  string `form:"task"`
	Deadline string `form:"deadline"`
}

// SubTaskForm is the body of POST /add_subtask/:task_id.
type SubTaskForm struct {
	Content  string `form:"subtask"`
	Deadline string `form:"subtask_deadline"`
}

// TaskInput is a decoded, validated submission shared by tasks and subtasks.
type TaskInput struct {
	Content  string
	Deadline *time.Time
}

// IsBlank reports whether there is nothing to store. Blank submissions are
// dropped without error.
func (input TaskInput) IsBlank() bool {
	return input.Content == ""
}

func (form TaskForm) Decode() (TaskInput, error) {
	return decode(form.Content, form.Deadline, "deadline")
}

func (form SubTaskForm) Decode() (TaskInput, error) {
	return decode(form.Content, form.Deadline, "subtask_deadline")
}

// decode checks the deadline first so that a malformed date is reported
// even when the content is blank
func decode(content, deadline, deadlineField string) (TaskInput, error) {
	parsed, err := dateutils.ParseDate(deadline)
	if err != nil {
		return TaskInput{}, &ValidationError{
			Field:   deadlineField,
			Message: msg.GetMessage("task.error.invalid-deadline", strings.TrimSpace(deadline)),
		}
	}

	content = strings.TrimSpace(content)
	if length := utf8.RuneCountInString(content); length > entity.ContentMaxLength {
		return TaskInput{}, &ValidationError{
			Field:   "content",
			Message: msg.GetMessage("task.error.content-too-long", entity.ContentMaxLength, length),
		}
	}

	return TaskInput{Content: content, Deadline: parsed}, nil
}
