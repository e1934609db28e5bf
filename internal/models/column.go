package models

import (
	"gorm.io/gorm"
)

// Column represents a board column. Name is free text chosen by the project
// owner; it is the only signal used to infer the lifecycle status of tasks
// dropped into the column. IsDefault marks the canonical "done" column.
type Column struct {
	ID        string `json:"id" gorm:"primaryKey"`
	ProjectID string `json:"projectId" gorm:"column:project_id;index;not null"`
	Name      string `json:"name" gorm:"not null"`
	IsDefault bool   `json:"isDefault" gorm:"column:is_default"`
	Position  int    `json:"position" gorm:"not null"`
	gorm.Model
}

// TableName specifies the table name for Column Model
func (Column) TableName() string {
	return "columns"
}
