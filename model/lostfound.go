package model

import (
	"time"

	"gorm.io/gorm"
)

// LostFoundKind distinguishes a "lost" report from a "found" report
type LostFoundKind string

const (
	LostFoundKindLost  LostFoundKind = "lost"
	LostFoundKindFound LostFoundKind = "found"
)

// LostFoundItem represents a post on the lost-and-found board
type LostFoundItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	ReporterID  uint           `gorm:"index;not null" json:"reporter_id"`
	Kind        LostFoundKind  `gorm:"type:varchar(10);not null" json:"kind"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	ImageURL    string         `gorm:"type:text" json:"image_url,omitempty"`
	Resolved    bool           `gorm:"default:false" json:"resolved"`

	Reporter User `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"reporter,omitempty"`
}
