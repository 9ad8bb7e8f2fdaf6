package model

import "time"

// CronJobLog records each scheduled job run for observability
type CronJobLog struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	JobName     string     `gorm:"index" json:"job_name"`
	Status      string     `json:"status"` // running, completed, failed
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Message     string     `json:"message,omitempty"`
	ErrorMsg    string     `json:"error_msg,omitempty"`
}
