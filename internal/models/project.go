package models

import (
	"gorm.io/gorm"
)

// Project represents a board and its team.
// Key is the short uppercase prefix used for human task keys ("PROJ-12").
type Project struct {
	ID      string `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"not null"`
	Key     string `json:"key" gorm:"uniqueIndex;not null"`
	OwnerID string `json:"ownerId" gorm:"column:owner_id;index;not null"`
	gorm.Model
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}

// ProjectMember links a user to a project with a role.
type ProjectMember struct {
	ID        string `json:"id" gorm:"primaryKey"`
	ProjectID string `json:"projectId" gorm:"column:project_id;uniqueIndex:idx_project_user;not null"`
	UserID    string `json:"userId" gorm:"column:user_id;uniqueIndex:idx_project_user;not null"`
	Role      string `json:"role" gorm:"default:'member'"`
	gorm.Model
}

// TableName specifies the table name for ProjectMember Model
func (ProjectMember) TableName() string {
	return "project_members"
}
