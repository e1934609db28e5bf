package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskStatus represents the lifecycle status of a task
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// Valid reports whether the status is one of the known lifecycle values.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task represents one unit of work on a project board.
// Position is a fractional ordering key: it only establishes relative order
// among siblings in the same column; ties are broken by created_at.
type Task struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	TaskKey     string       `json:"taskKey" gorm:"column:task_key;uniqueIndex;not null"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status" gorm:"not null;default:'TODO'"`
	Priority    TaskPriority `json:"priority" gorm:"default:'MEDIUM'"`
	Position    float64      `json:"position" gorm:"not null"`
	ColumnID    string       `json:"columnId" gorm:"column:column_id;index;not null"`
	ProjectID   string       `json:"projectId" gorm:"column:project_id;index;not null"`
	AssigneeID  string       `json:"assigneeId" gorm:"column:assignee_id;index"`
	CreatorID   string       `json:"creatorId" gorm:"column:creator_id"`
	CompletedAt *time.Time   `json:"completedAt" gorm:"column:completed_at"`
	gorm.Model
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
