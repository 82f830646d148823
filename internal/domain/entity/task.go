package entity

import "time"

// ContentMaxLength bounds Task.Content and SubTask.Content, in characters.
const ContentMaxLength = 200

// Task is a top-level to-do item. It owns its subtasks: deleting a task
// deletes them too.
type Task struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Content  string     `gorm:"size:200;not null" json:"content"`
	Deadline *time.Time `gorm:"type:date" json:"deadline,omitempty"`
	SubTasks []SubTask  `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"subtasks"`
}

func (Task) TableName() string {
	return "task"
}

// SubTask is a to-do item owned by exactly one Task.
type SubTask struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Content  string     `gorm:"size:200;not null" json:"content"`
	Deadline *time.Time `gorm:"type:date" json:"deadline,omitempty"`
	ParentID uint       `gorm:"not null;index" json:"parentId"`
}

func (SubTask) TableName() string {
	return "sub_task"
}
