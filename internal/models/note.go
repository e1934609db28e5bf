package models

import (
	"gorm.io/gorm"
)

// Note is a free-form project note.
type Note struct {
	ID        string `json:"id" gorm:"primaryKey"`
	ProjectID string `json:"projectId" gorm:"column:project_id;index;not null"`
	AuthorID  string `json:"authorId" gorm:"column:author_id;not null"`
	Title     string `json:"title" gorm:"not null"`
	Content   string `json:"content"`
	gorm.Model
}

// TableName specifies the table name for Note Model
func (Note) TableName() string {
	return "notes"
}
