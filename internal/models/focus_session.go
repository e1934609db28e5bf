package models

import (
	"time"

	"gorm.io/gorm"
)

// FocusSession records a timed work session, optionally linked to a task.
// EndedAt is nil while the session is running.
type FocusSession struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	UserID          string     `json:"userId" gorm:"column:user_id;index;not null"`
	TaskID          string     `json:"taskId" gorm:"column:task_id;index"`
	StartedAt       time.Time  `json:"startedAt" gorm:"column:started_at;not null"`
	EndedAt         *time.Time `json:"endedAt" gorm:"column:ended_at"`
	DurationMinutes int        `json:"durationMinutes" gorm:"column:duration_minutes"`
	gorm.Model
}

// TableName specifies the table name for FocusSession Model
func (FocusSession) TableName() string {
	return "focus_sessions"
}
