package model

import (
	"time"

	"gorm.io/gorm"
)

// TaskStatus represents the completion state of a planner task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// PlannerTask represents a revision planner entry owned by a user
type PlannerTask struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Title     string         `gorm:"not null" json:"title"`
	Subject   string         `gorm:"type:varchar(100)" json:"subject,omitempty"`
	DueDate   time.Time      `gorm:"index" json:"due_date"`
	Status    TaskStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
